package models

import (
	"fmt"

	"gallery/errvalues"
)

// Photo carries no binary data; the three size variants live in the object
// store under keys derived from the id
type Photo struct {
	ID         string `json:"id"`
	Author     string `json:"author,omitempty"`
	UploadedBy string `json:"uploaded_by"`
	Timestamp  string `json:"timestamp"`
}

const (
	SizeOriginal  = "original"
	SizeThumbnail = "thumbnail"
	SizePreview   = "preview"
)

// PhotoSizes lists the variants every photo must have, in upload order
var PhotoSizes = []string{SizeOriginal, SizeThumbnail, SizePreview}

// PhotoObjectID maps a photo id and size to its object-store key
func PhotoObjectID(id, size string) (string, error) {
	switch size {
	case SizeOriginal:
		return id, nil
	case SizeThumbnail:
		return "thumb_" + id, nil
	case SizePreview:
		return "preview_" + id, nil
	}
	return "", fmt.Errorf("photo size %q: %w", size, errvalues.ErrValidation)
}

// PhotoObjectIDs returns the keys of all three variants of a photo
func PhotoObjectIDs(id string) []string {
	return []string{id, "thumb_" + id, "preview_" + id}
}
