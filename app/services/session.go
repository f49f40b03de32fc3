package services

import "github.com/shashiranjanraj/qrmenu/app/models"

// Session answers "who is calling". Handlers build one per request and
// pass it to every operation that needs an owner.
type Session interface {
	CurrentUser() (models.User, bool)
}

type userSession struct {
	user models.User
}

func (s userSession) CurrentUser() (models.User, bool) { return s.user, true }

// NewSession returns a session authenticated as u.
func NewSession(u models.User) Session { return userSession{user: u} }

type anonymous struct{}

func (anonymous) CurrentUser() (models.User, bool) { return models.User{}, false }

// Anonymous is the session of an unauthenticated caller.
var Anonymous Session = anonymous{}
