package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/internal/apperr"
	"github.com/quickgrade/quickgrade/internal/dto"
	"github.com/quickgrade/quickgrade/internal/middleware"
	"github.com/quickgrade/quickgrade/internal/service"
	"github.com/quickgrade/quickgrade/internal/token"
)

const cookieMaxAge = int(token.DefaultTTL / time.Second)

type AuthController struct {
	authSvc service.AuthService
	env     config.Environment
}

func NewAuthController(authSvc service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authSvc: authSvc, env: cfg.Environment}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user (DOCENTE by default) and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.RegisterRequest true "Email, password and optional role"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: failed to bind request")
		respondError(c, apperr.Validation(validationDetails(err)))
		return
	}

	user, raw, err := ctrl.authSvc.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	ctrl.setSessionCookie(c, raw)
	c.JSON(http.StatusCreated, dto.AuthResponse{User: *user})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 401 {object} dto.ErrorResponse "Wrong email or password"
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Login: failed to bind request")
		respondError(c, apperr.Validation(validationDetails(err)))
		return
	}

	user, raw, err := ctrl.authSvc.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}

	ctrl.setSessionCookie(c, raw)
	c.JSON(http.StatusOK, dto.AuthResponse{User: *user})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. The token itself stays valid until expiry.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", ctrl.env == config.Production, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout effettuato con successo"})
}

// Me godoc
// @Summary Current session
// @Description Returns the user behind the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		respondError(c, apperr.Unauthorized())
		return
	}

	user, err := ctrl.authSvc.Me(identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{User: *user})
}

func (ctrl *AuthController) setSessionCookie(c *gin.Context, raw string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, raw, cookieMaxAge, "/", "", ctrl.env == config.Production, true)
}
