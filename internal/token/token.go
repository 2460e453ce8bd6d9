// Package token signs and verifies the compact session token carried by the
// auth_token cookie. Stateless: there is no revocation list, rotating the
// secret is the only way to invalidate issued tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quickgrade/quickgrade/config"
	"github.com/quickgrade/quickgrade/internal/model"
)

const DefaultTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Identity is the payload carried by a session token.
type Identity struct {
	UserID string
	Email  string
	Role   model.Role
}

type claims struct {
	UserID string     `json:"userId"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(cfg *config.Config) *Codec {
	return New([]byte(cfg.Auth.JWTSecret), DefaultTTL)
}

func New(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

func (c *Codec) Issue(identity Identity) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return t.SignedString(c.secret)
}

// Verify returns the decoded identity, or ErrInvalidToken for anything that is
// malformed, tampered with, signed with another secret or expired.
func (c *Codec) Verify(raw string) (*Identity, error) {
	var cl claims
	t, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: cl.UserID, Email: cl.Email, Role: cl.Role}, nil
}
