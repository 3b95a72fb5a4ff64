package domain

import "time"

// User is a persisted account row. PasswordHash is a bcrypt digest; the
// plaintext password never survives registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the authenticated view of a user handed to the session layer.
// It deliberately excludes the password hash.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Identity strips the credential material from a user row.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}
