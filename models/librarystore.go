package models

import (
	"fmt"
	"sync"
	"time"

	"gallery/errvalues"
	"gallery/storage"
	"gallery/utils"

	cmap "github.com/orcaman/concurrent-map/v2"
)

const albumIDLength = 16

// Library mutations are full read-modify-write cycles over one JSON
// document, and the store offers no compare-and-swap. Writers to the same
// library are serialized within this process by a per-id mutex; concurrent
// writers in separate processes can still lose updates.
var libraryLocks = cmap.New[*sync.Mutex]()

func lockLibrary(id string) *sync.Mutex {
	mu, ok := libraryLocks.Get(id)
	if !ok {
		mu = &sync.Mutex{}
		if !libraryLocks.SetIfAbsent(id, mu) {
			mu, _ = libraryLocks.Get(id)
		}
	}
	mu.Lock()
	return mu
}

// PhotoRef is one entry in a patched photo list. Author only overrides the
// stored value when present
type PhotoRef struct {
	ID     string  `json:"id"`
	Author *string `json:"author,omitempty"`
}

// AlbumPatch carries the optional album fields. Cover is tri-state: absent,
// explicit clear, or a candidate photo id
type AlbumPatch struct {
	Name       string
	Photos     []PhotoRef
	PhotosSet  bool
	Cover      string
	CoverSet   bool
	CoverClear bool
	Public     *bool
}

// CreateAlbum appends a new album to the library. Album names are unique
// within a library (case-sensitive, checked by scan at write time)
func CreateAlbum(libraryID, name string, public bool, actor *Actor) (Album, error) {
	mu := lockLibrary(libraryID)
	defer mu.Unlock()

	library, err := loadLibrary(libraryID)
	if err != nil {
		return Album{}, err
	}
	if !HasLibraryAccess(library.ID, actor) {
		return Album{}, fmt.Errorf("library %q: %w", library.ID, errvalues.ErrUnauthorized)
	}
	for _, album := range library.Albums {
		if album.Name == name {
			return Album{}, fmt.Errorf("album %q: %w", name, errvalues.ErrConflict)
		}
	}
	album := Album{
		ID:        utils.GenerateID(albumIDLength),
		Name:      name,
		Public:    public,
		CreatedBy: actor.Username,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Photos:    []Photo{},
	}
	library.Albums = append(library.Albums, album)
	return album, library.Save()
}

// PatchAlbum applies the optional fields of patch to one album.
//
// A photo list replaces the album's list wholesale: ids missing from the
// new list are deletions - their three object variants are removed from the
// object store and a matching cover reference is cleared. Surviving photos
// are merged with their stored record and re-stamped with the acting user
// and the current time, reorders included. A cover id is applied only when
// it names a photo in the resulting list; anything else is ignored.
func PatchAlbum(libraryID, albumID string, patch AlbumPatch, actor *Actor) (Album, error) {
	mu := lockLibrary(libraryID)
	defer mu.Unlock()

	library, err := loadLibrary(libraryID)
	if err != nil {
		return Album{}, err
	}
	if !HasLibraryAccess(library.ID, actor) {
		return Album{}, fmt.Errorf("library %q: %w", library.ID, errvalues.ErrUnauthorized)
	}
	album := findAlbum(&library, albumID)
	if album == nil {
		return Album{}, fmt.Errorf("album %q: %w", albumID, errvalues.ErrNotFound)
	}
	if patch.Name != "" {
		album.Name = patch.Name
	}
	if patch.PhotosSet {
		if err = replacePhotos(album, patch.Photos, actor); err != nil {
			return Album{}, err
		}
	}
	if patch.CoverSet && photoInAlbum(album, patch.Cover) {
		album.Cover = patch.Cover
	} else if patch.CoverClear {
		album.Cover = ""
	}
	if patch.Public != nil {
		album.Public = *patch.Public
	}
	return *album, library.Save()
}

// DeleteAlbum removes the album record only. The photo objects it
// referenced stay in the object store - deletion does not cascade there.
func DeleteAlbum(libraryID, albumID string, actor *Actor) error {
	mu := lockLibrary(libraryID)
	defer mu.Unlock()

	library, err := loadLibrary(libraryID)
	if err != nil {
		return err
	}
	if !HasLibraryAccess(library.ID, actor) {
		return fmt.Errorf("library %q: %w", library.ID, errvalues.ErrUnauthorized)
	}
	for i, album := range library.Albums {
		if album.ID == albumID {
			library.Albums = append(library.Albums[:i], library.Albums[i+1:]...)
			return library.Save()
		}
	}
	return fmt.Errorf("album %q: %w", albumID, errvalues.ErrNotFound)
}

func findAlbum(library *Library, albumID string) *Album {
	for i := range library.Albums {
		if library.Albums[i].ID == albumID {
			return &library.Albums[i]
		}
	}
	return nil
}

func photoInAlbum(album *Album, photoID string) bool {
	for _, photo := range album.Photos {
		if photo.ID == photoID {
			return true
		}
	}
	return false
}

func replacePhotos(album *Album, refs []PhotoRef, actor *Actor) error {
	existing := make(map[string]Photo, len(album.Photos))
	for _, photo := range album.Photos {
		existing[photo.ID] = photo
	}
	now := time.Now().UTC().Format(time.RFC3339)
	photos := make([]Photo, 0, len(refs))
	kept := make(map[string]bool, len(refs))
	for _, ref := range refs {
		photo := existing[ref.ID]
		photo.ID = ref.ID
		if ref.Author != nil {
			photo.Author = *ref.Author
		}
		photo.UploadedBy = actor.Username
		photo.Timestamp = now
		photos = append(photos, photo)
		kept[ref.ID] = true
	}
	objects := storage.GetDefaultStorage()
	for _, photo := range album.Photos {
		if kept[photo.ID] {
			continue
		}
		if album.Cover == photo.ID {
			album.Cover = ""
		}
		for _, objectID := range PhotoObjectIDs(photo.ID) {
			if err := objects.Delete(objectID); err != nil {
				return err
			}
		}
	}
	album.Photos = photos
	return nil
}
