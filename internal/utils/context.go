package utils

import (
	"context"

	"feedback-prioritizer/internal/models"
)

type CtxKey string

// Session identity keys set by the auth middleware.
const (
	CtxEmail CtxKey = "email"
	CtxRole  CtxKey = "role"
)

func GetString(ctx context.Context, key any) (string, bool) {
	v := ctx.Value(key)
	s, ok := v.(string)
	return s, ok
}

// SessionAdmin returns the signed-in dashboard user, if any.
func SessionAdmin(ctx context.Context) (*models.Admin, bool) {
	email, ok := GetString(ctx, CtxEmail)
	if !ok || email == "" {
		return nil, false
	}
	role, _ := GetString(ctx, CtxRole)
	return &models.Admin{Email: email, Role: role}, true
}
