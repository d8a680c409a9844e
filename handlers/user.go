package handlers

import (
	"net/http"

	"gallery/auth"
	"gallery/models"

	"github.com/gin-gonic/gin"
)

type UserCreateRequest struct {
	Username      string   `json:"username" binding:"required"`
	Password      string   `json:"password" binding:"required"`
	LibraryAccess []string `json:"library_access"`
	AdminAccess   bool     `json:"admin_access"`
}

type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func UserCreate(c *gin.Context) {
	actor := auth.CurrentActor(c)
	if !actor.IsAdmin() {
		c.JSON(http.StatusUnauthorized, Response{"unauthorized to create user"})
		return
	}
	req := UserCreateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	passwordHash, err := auth.HashPassword(req.Password, auth.DefaultIterations)
	if err != nil {
		abortWithError(c, err)
		return
	}
	user, err := models.UserCreate(req.Username, passwordHash, req.LibraryAccess, req.AdminAccess, actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SafeUserView(user, actor))
}

func UserGet(c *gin.Context) {
	user, err := models.GetUser(c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	actor := auth.CurrentActor(c)
	// Only the account itself may read its record
	if actor == nil || actor.Username != user.Username {
		c.JSON(http.StatusUnauthorized, Response{"unauthorized to access user"})
		return
	}
	c.JSON(http.StatusOK, models.SafeUserView(user, actor))
}

// UserLogin deliberately distinguishes an unknown user (404) from a wrong
// password (401), matching the stored behavior of the system
func UserLogin(c *gin.Context) {
	req := UserLoginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user, err := models.GetUser(req.Username)
	if err != nil {
		abortWithError(c, err)
		return
	}
	matches, err := auth.VerifyPassword(req.Password, user.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, Response{"incorrect password"})
		return
	}
	token, err := Tokens.Issue(user.Username)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  models.SafeUserView(user, user.Actor()),
	})
}
