package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const sessionTTL = 24 * time.Hour

// AuthService checks the configured dashboard admin and issues session tokens.
type AuthService struct {
	adminEmail    string
	passwordHash  string
	sessionSecret string
}

func NewAuthService(adminEmail, passwordHash, sessionSecret string) *AuthService {
	return &AuthService{
		adminEmail:    strings.TrimSpace(adminEmail),
		passwordHash:  passwordHash,
		sessionSecret: sessionSecret,
	}
}

func (a *AuthService) Login(ctx context.Context, email, password string) (token string, admin *models.Admin, err error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(email), a.adminEmail) {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(a.passwordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, a.adminEmail, models.RoleAdmin, sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, &models.Admin{Email: a.adminEmail, Role: models.RoleAdmin}, nil
}
