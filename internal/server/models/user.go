package models

import "time"

// User is a registered account. PasswordHash is never serialized to
// clients: the json tag strips it from every response body.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
