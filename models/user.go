package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"gallery/errvalues"
	"gallery/kv"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]`)

// User is stored as JSON under "user-{username}". Password holds the
// encoded credential hash, never the plain text
type User struct {
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	LibraryAccess []string `json:"library_access"`
	AdminAccess   bool     `json:"admin_access"`
	CreatedBy     string   `json:"created_by,omitempty"`
	Timestamp     string   `json:"timestamp"`
}

func userKey(username string) string {
	return "user-" + username
}

func GetUser(username string) (User, error) {
	data, err := kv.Instance.Get(userKey(username))
	if err == kv.ErrKeyNotFound {
		return User{}, fmt.Errorf("user %q: %w", username, errvalues.ErrNotFound)
	}
	if err != nil {
		return User{}, err
	}
	var user User
	if err = json.Unmarshal(data, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (u *User) Save() error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return kv.Instance.Put(userKey(u.Username), data)
}

// UserCreate stores a new user record. Only admins may create users; the
// password must already be hashed by the caller
func UserCreate(username, passwordHash string, libraryAccess []string, adminAccess bool, actor *Actor) (User, error) {
	if !actor.IsAdmin() {
		return User{}, fmt.Errorf("create user: %w", errvalues.ErrUnauthorized)
	}
	if len(username) < 2 || !usernamePattern.MatchString(username) {
		return User{}, fmt.Errorf("username %q: %w", username, errvalues.ErrValidation)
	}
	if _, err := kv.Instance.Get(userKey(username)); err == nil {
		return User{}, fmt.Errorf("user %q: %w", username, errvalues.ErrConflict)
	}
	if libraryAccess == nil {
		libraryAccess = []string{}
	}
	user := User{
		Username:      username,
		Password:      passwordHash,
		LibraryAccess: libraryAccess,
		AdminAccess:   adminAccess,
		CreatedBy:     actor.Username,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	return user, user.Save()
}
