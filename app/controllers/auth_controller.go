package controllers

import (
	"github.com/shashiranjanraj/qrmenu/app/models"
	"github.com/shashiranjanraj/qrmenu/app/services"
	"github.com/shashiranjanraj/qrmenu/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register handles POST /api/auth/register.
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := a.auth.Register(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login.
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	user, token, err := a.auth.Login(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(authResponse{User: user, Token: token})
}

// Profile handles GET /api/profile.
func (a *AuthController) Profile(c *ctx.Context) {
	sess, ok := sessionOf(c, a.auth)
	if !ok {
		return
	}
	user, ok := sess.CurrentUser()
	if !ok {
		fail(c, services.ErrAuthenticationRequired)
		return
	}
	c.Success(user)
}

// UpdateProfile handles PUT /api/profile.
func (a *AuthController) UpdateProfile(c *ctx.Context) {
	sess, ok := sessionOf(c, a.auth)
	if !ok {
		return
	}

	var patch services.ProfilePatch
	if !c.BindJSON(&patch) {
		return
	}

	user, err := a.auth.UpdateProfile(c.Context(), sess, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}
