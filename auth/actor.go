package auth

import (
	"strings"

	"gallery/models"
)

// ActorResolver turns the Authorization header into an actor. It never
// rejects a request - any credential it cannot place resolves to anonymous,
// and the authorization checks happen downstream.
type ActorResolver struct {
	Tokens      *TokenService
	AdminSecret string // Empty disables the admin-secret path
}

func NewActorResolver(tokens *TokenService, adminSecret string) *ActorResolver {
	return &ActorResolver{Tokens: tokens, AdminSecret: adminSecret}
}

func (r *ActorResolver) Resolve(authorization string) *models.Actor {
	if strings.HasPrefix(authorization, "Bearer ") {
		username, err := r.Tokens.Verify(strings.TrimPrefix(authorization, "Bearer "))
		if err != nil {
			return nil
		}
		user, err := models.GetUser(username)
		if err != nil {
			return nil
		}
		return user.Actor()
	}
	if r.AdminSecret != "" && authorization == r.AdminSecret {
		return models.AdminActor()
	}
	return nil
}
