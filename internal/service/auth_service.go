package service

import (
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/quickgrade/quickgrade/internal/apperr"
	"github.com/quickgrade/quickgrade/internal/dto"
	"github.com/quickgrade/quickgrade/internal/model"
	"github.com/quickgrade/quickgrade/internal/password"
	"github.com/quickgrade/quickgrade/internal/repository"
	"github.com/quickgrade/quickgrade/internal/token"
)

type AuthService interface {
	// Register creates the user and returns it with a fresh session token.
	Register(req dto.RegisterRequest) (*dto.UserResponse, string, error)
	// Login verifies credentials; unknown email and wrong password are
	// indistinguishable to the caller.
	Login(req dto.LoginRequest) (*dto.UserResponse, string, error)
	Me(userID string) (*dto.UserResponse, error)
}

type authService struct {
	users repository.UserRepository
	codec *token.Codec
}

func NewAuthService(users repository.UserRepository, codec *token.Codec) AuthService {
	return &authService{users: users, codec: codec}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.UserResponse, string, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, "", apperr.EmailExists()
	} else if apperr.ClassifyStore(err) != apperr.StoreNotFound {
		log.Error().Err(err).Msg("Register: email lookup failed")
		return nil, "", apperr.Internal()
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("Register: hashing failed")
		return nil, "", apperr.Internal()
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleDocente
	}

	user := model.User{Email: req.Email, PasswordHash: hash, Role: role}
	if err := s.users.Create(&user); err != nil {
		switch apperr.ClassifyStore(err) {
		case apperr.StoreUniqueViolation:
			// Lost the race against a concurrent registration.
			return nil, "", apperr.EmailExists()
		default:
			log.Error().Err(err).Msg("Register: user insert failed")
			return nil, "", apperr.Internal()
		}
	}

	raw, err := s.issue(&user)
	if err != nil {
		return nil, "", err
	}
	return userResponse(&user), raw, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if apperr.ClassifyStore(err) == apperr.StoreNotFound {
			return nil, "", apperr.InvalidCredentials()
		}
		log.Error().Err(err).Msg("Login: email lookup failed")
		return nil, "", apperr.Internal()
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, "", apperr.InvalidCredentials()
	}

	raw, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return userResponse(user), raw, nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if apperr.ClassifyStore(err) == apperr.StoreNotFound {
			// Valid token for a user that no longer exists.
			return nil, apperr.Unauthorized()
		}
		log.Error().Err(err).Msg("Me: user lookup failed")
		return nil, apperr.Internal()
	}
	return userResponse(user), nil
}

func (s *authService) issue(user *model.User) (string, error) {
	raw, err := s.codec.Issue(token.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		log.Error().Err(err).Msg("Token signing failed")
		return "", apperr.Internal()
	}
	return raw, nil
}

func userResponse(user *model.User) *dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp
}
