package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
	"github.com/shashiranjanraj/qrmenu/pkg/logger"
)

// fail answers with the status that matches err.
func fail(c *ctx.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.ValidationError(ve.Fields)
	case errors.Is(err, services.ErrAuthenticationRequired):
		c.Error(http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrNotFound):
		c.Error(http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrPermissionDenied):
		c.Error(http.StatusForbidden, "You don't have permission to modify this menu")
	case errors.Is(err, services.ErrEmailTaken):
		c.Error(http.StatusConflict, "Email already in use")
	case services.IsPersistence(err):
		logger.WithCtx(c.Context()).Error("persistence failure", "error", err)
		c.Error(http.StatusInternalServerError, "Could not save changes, please try again")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// sessionOf resolves the caller. On failure it has already answered.
func sessionOf(c *ctx.Context, auth *services.AuthService) (services.Session, bool) {
	sess, err := auth.Session(c.Context())
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return sess, true
}
