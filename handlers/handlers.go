package handlers

import (
	"errors"
	"log"
	"net/http"

	"gallery/auth"
	"gallery/errvalues"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

// Tokens signs the session tokens returned by UserLogin
var Tokens *auth.TokenService

func Init(tokens *auth.TokenService) {
	Tokens = tokens
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errvalues.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errvalues.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errvalues.ErrValidation), errors.Is(err, errvalues.ErrConflict):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		c.JSON(status, Response{"internal error"})
		return
	}
	c.JSON(status, Response{err.Error()})
}
