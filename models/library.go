package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"gallery/errvalues"
	"gallery/kv"
)

var libraryIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Library is stored as a single JSON document under "library-{id}" with its
// albums and photos inline. Album order and photo order are display order
type Library struct {
	ID        string  `json:"id"`
	CreatedBy string  `json:"created_by"`
	Timestamp string  `json:"timestamp"`
	Albums    []Album `json:"albums"`
}

type Album struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Cover     string  `json:"cover,omitempty"`
	Public    bool    `json:"public"`
	CreatedBy string  `json:"created_by"`
	Timestamp string  `json:"timestamp"`
	Photos    []Photo `json:"photos"`
}

func libraryKey(id string) string {
	return "library-" + id
}

func ValidLibraryID(id string) bool {
	return libraryIDPattern.MatchString(id)
}

func loadLibrary(id string) (Library, error) {
	if !ValidLibraryID(id) {
		return Library{}, fmt.Errorf("library id %q: %w", id, errvalues.ErrValidation)
	}
	data, err := kv.Instance.Get(libraryKey(id))
	if err == kv.ErrKeyNotFound {
		return Library{}, fmt.Errorf("library %q: %w", id, errvalues.ErrNotFound)
	}
	if err != nil {
		return Library{}, err
	}
	var library Library
	if err = json.Unmarshal(data, &library); err != nil {
		return Library{}, err
	}
	return library, nil
}

func (l *Library) Save() error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return kv.Instance.Put(libraryKey(l.ID), data)
}

// LibraryCreate stores a new empty library under the caller-chosen id.
// Admin only
func LibraryCreate(id string, actor *Actor) (Library, error) {
	if !actor.IsAdmin() {
		return Library{}, fmt.Errorf("create library: %w", errvalues.ErrUnauthorized)
	}
	if !ValidLibraryID(id) {
		return Library{}, fmt.Errorf("library id %q: %w", id, errvalues.ErrValidation)
	}
	library := Library{
		ID:        id,
		CreatedBy: actor.Username,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Albums:    []Album{},
	}
	return library, library.Save()
}

// LibraryGet loads a library for reading. Callers without library access get
// only the public albums - non-public ones are removed from the slice
// entirely, before any field-level redaction
func LibraryGet(id string, actor *Actor) (library Library, authorized bool, err error) {
	library, err = loadLibrary(id)
	if err != nil {
		return Library{}, false, err
	}
	authorized = HasLibraryAccess(library.ID, actor)
	if !authorized {
		visible := []Album{}
		for _, album := range library.Albums {
			if album.Public {
				visible = append(visible, album)
			}
		}
		library.Albums = visible
	}
	return library, authorized, nil
}
