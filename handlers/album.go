package handlers

import (
	"encoding/json"
	"net/http"

	"gallery/auth"
	"gallery/models"

	"github.com/gin-gonic/gin"
)

type AlbumCreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Public *bool  `json:"public"`
}

// AlbumPatchRequest fields are independently optional. Cover is raw so an
// explicit null (clear the cover) can be told apart from an absent key
type AlbumPatchRequest struct {
	Name   *string            `json:"name"`
	Public *bool              `json:"public"`
	Cover  json.RawMessage    `json:"cover"`
	Photos *[]models.PhotoRef `json:"photos"`
}

func AlbumCreate(c *gin.Context) {
	actor := auth.CurrentActor(c)
	req := AlbumCreateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	public := false
	if req.Public != nil {
		public = *req.Public
	}
	album, err := models.CreateAlbum(c.Query("library"), req.Name, public, actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SafeAlbumView(album, actor))
}

func AlbumPatch(c *gin.Context) {
	actor := auth.CurrentActor(c)
	req := AlbumPatchRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	patch := models.AlbumPatch{Public: req.Public}
	if req.Name != nil {
		patch.Name = *req.Name
	}
	if req.Photos != nil {
		patch.PhotosSet = true
		patch.Photos = *req.Photos
	}
	if len(req.Cover) > 0 {
		if string(req.Cover) == "null" {
			patch.CoverClear = true
		} else {
			if err := json.Unmarshal(req.Cover, &patch.Cover); err != nil {
				c.JSON(http.StatusBadRequest, Response{"cover must be a string or null"})
				return
			}
			patch.CoverSet = true
		}
	}
	album, err := models.PatchAlbum(c.Query("library"), c.Param("id"), patch, actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SafeAlbumView(album, actor))
}

func AlbumDelete(c *gin.Context) {
	actor := auth.CurrentActor(c)
	if err := models.DeleteAlbum(c.Query("library"), c.Param("id"), actor); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
