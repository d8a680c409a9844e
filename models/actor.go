package models

// Actor is the resolved identity behind a request. A nil *Actor is an
// anonymous caller. It is derived, never persisted, and never carries a
// password hash
type Actor struct {
	Username      string
	LibraryAccess []string
	AdminAccess   bool
}

// AdminActor is the synthetic actor behind the shared admin secret. It has
// no backing user record
func AdminActor() *Actor {
	return &Actor{
		Username:      "admin",
		LibraryAccess: []string{},
		AdminAccess:   true,
	}
}

// Actor strips the password from a stored user record
func (u *User) Actor() *Actor {
	return &Actor{
		Username:      u.Username,
		LibraryAccess: u.LibraryAccess,
		AdminAccess:   u.AdminAccess,
	}
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.AdminAccess
}

// HasLibraryAccess is the whole authorization model: admins see everything,
// everyone else needs a per-library grant
func HasLibraryAccess(libraryID string, actor *Actor) bool {
	if actor == nil {
		return false
	}
	if actor.AdminAccess {
		return true
	}
	for _, id := range actor.LibraryAccess {
		if id == libraryID {
			return true
		}
	}
	return false
}
