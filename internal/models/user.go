package models

import "time"

// User captures application-facing fields for a registered identity.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the public subset of a user returned to clients.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile strips everything but the display fields.
func (u User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email}
}
