package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"gallery/auth"
	"gallery/models"
	"gallery/storage"
	"gallery/utils"

	"github.com/gin-gonic/gin"
)

const photoIDLength = 16

// PhotoUpload stores the three size variants of a new photo and returns its
// record. The record is not attached to any album here - the caller follows
// up with an album patch that includes the new photo id.
func PhotoUpload(c *gin.Context) {
	actor := auth.CurrentActor(c)
	_, authorized, err := models.LibraryGet(c.Query("library"), actor)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !authorized {
		c.JSON(http.StatusUnauthorized, Response{"unauthorized to access library"})
		return
	}
	photoID := utils.GenerateID(photoIDLength)
	objects := storage.GetDefaultStorage()
	for _, size := range models.PhotoSizes {
		fileHeader, err := c.FormFile(size)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{fmt.Sprintf("expected %q to be a file", size)})
			return
		}
		objectID, _ := models.PhotoObjectID(photoID, size)
		file, err := fileHeader.Open()
		if err != nil {
			abortWithError(c, err)
			return
		}
		_, err = objects.Save(objectID, fileHeader.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			abortWithError(c, err)
			return
		}
	}
	photo := models.Photo{
		ID:         photoID,
		UploadedBy: actor.Username,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	c.JSON(http.StatusOK, models.SafePhotoView(photo, actor))
}

// PhotoFetch streams one stored variant. No auth check - variant keys are
// derived from unguessable photo ids
func PhotoFetch(c *gin.Context) {
	objectID, err := models.PhotoObjectID(c.Param("id"), c.Query("size"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	reader, info, err := storage.GetDefaultStorage().Open(objectID)
	if errors.Is(err, fs.ErrNotExist) {
		c.JSON(http.StatusNotFound, Response{"photo not found"})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer reader.Close()
	c.Header("Cache-Control", "public, max-age=604800, immutable")
	if info.ETag != "" {
		c.Header("ETag", info.ETag)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.DataFromReader(http.StatusOK, info.Size, contentType, reader, nil)
}
