package handlers

import (
	"net/http"

	"gallery/auth"
	"gallery/models"

	"github.com/gin-gonic/gin"
)

type LibraryCreateRequest struct {
	ID string `json:"id" binding:"required"`
}

// LibraryResponse carries the caller's view plus whether the caller has
// library access (the UI uses it to decide between gallery and edit mode)
type LibraryResponse struct {
	models.SafeLibrary
	Authorized bool `json:"authorized"`
}

func LibraryCreate(c *gin.Context) {
	actor := auth.CurrentActor(c)
	req := LibraryCreateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	library, err := models.LibraryCreate(req.ID, actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SafeLibraryView(library, actor))
}

func LibraryGet(c *gin.Context) {
	actor := auth.CurrentActor(c)
	library, authorized, err := models.LibraryGet(c.Query("library"), actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, LibraryResponse{
		SafeLibrary: models.SafeLibraryView(library, actor),
		Authorized:  authorized,
	})
}
