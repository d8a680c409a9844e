package models

// Safe views are the actor-scoped projections sent to callers. They are
// produced by copying, never by deleting fields on the stored document, so
// building a view cannot corrupt the document it was built from.
// Id, name, public and cover survive every redaction; the admin view is a
// field superset of any other actor's view of the same entity.

type SafeUser struct {
	Username      string   `json:"username"`
	LibraryAccess []string `json:"library_access"`
	AdminAccess   bool     `json:"admin_access"`
	CreatedBy     string   `json:"created_by,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
}

type SafeLibrary struct {
	ID        string      `json:"id"`
	CreatedBy string      `json:"created_by,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Albums    []SafeAlbum `json:"albums"`
}

type SafeAlbum struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Cover     string      `json:"cover,omitempty"`
	Public    bool        `json:"public"`
	CreatedBy string      `json:"created_by,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Photos    []SafePhoto `json:"photos"`
}

type SafePhoto struct {
	ID         string `json:"id"`
	Author     string `json:"author,omitempty"`
	UploadedBy string `json:"uploaded_by,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// SafeUserView never includes the password hash
func SafeUserView(u User, actor *Actor) SafeUser {
	view := SafeUser{
		Username:      u.Username,
		LibraryAccess: u.LibraryAccess,
		AdminAccess:   u.AdminAccess,
	}
	if actor.IsAdmin() {
		view.CreatedBy = u.CreatedBy
		view.Timestamp = u.Timestamp
	}
	return view
}

// SafeLibraryView redacts creation metadata for non-admins and maps every
// album through its own safe view. The album count is never changed here -
// removing non-public albums from a non-member's list is LibraryGet's job,
// not redaction's
func SafeLibraryView(l Library, actor *Actor) SafeLibrary {
	view := SafeLibrary{
		ID:     l.ID,
		Albums: make([]SafeAlbum, 0, len(l.Albums)),
	}
	if actor.IsAdmin() {
		view.CreatedBy = l.CreatedBy
		view.Timestamp = l.Timestamp
	}
	for _, album := range l.Albums {
		view.Albums = append(view.Albums, SafeAlbumView(album, actor))
	}
	return view
}

func SafeAlbumView(a Album, actor *Actor) SafeAlbum {
	if actor.IsAdmin() {
		return fullAlbumView(a)
	}
	view := SafeAlbum{
		ID:     a.ID,
		Name:   a.Name,
		Cover:  a.Cover,
		Public: a.Public,
		Photos: make([]SafePhoto, 0, len(a.Photos)),
	}
	for _, photo := range a.Photos {
		view.Photos = append(view.Photos, SafePhotoView(photo, actor))
	}
	return view
}

func SafePhotoView(p Photo, actor *Actor) SafePhoto {
	view := SafePhoto{
		ID:     p.ID,
		Author: p.Author,
	}
	if actor.IsAdmin() {
		view.UploadedBy = p.UploadedBy
		view.Timestamp = p.Timestamp
	}
	return view
}

func fullAlbumView(a Album) SafeAlbum {
	view := SafeAlbum{
		ID:        a.ID,
		Name:      a.Name,
		Cover:     a.Cover,
		Public:    a.Public,
		CreatedBy: a.CreatedBy,
		Timestamp: a.Timestamp,
		Photos:    make([]SafePhoto, 0, len(a.Photos)),
	}
	for _, photo := range a.Photos {
		view.Photos = append(view.Photos, SafePhoto(photo))
	}
	return view
}
