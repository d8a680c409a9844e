package auth

import (
	"gallery/models"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Middleware resolves the request's actor once and stores it in the context
func Middleware(resolver *ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := resolver.Resolve(c.GetHeader("Authorization")); actor != nil {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// CurrentActor returns the actor resolved by Middleware, nil for anonymous
func CurrentActor(c *gin.Context) *models.Actor {
	if v, ok := c.Get(actorKey); ok {
		return v.(*models.Actor)
	}
	return nil
}
