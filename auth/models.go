// Package auth handles identity for the launcher application: registration,
// login, session cookies, and the middleware that makes the signed-in user
// available to the rest of the request chain.
package auth

import "time"

// User represents a user in the system.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Image          string    `json:"image,omitempty"`
	HashedPassword string    `json:"-"` // never exposed
	CreatedAt      time.Time `json:"created_at"`
}

// SessionUser is the subset of a user carried in the session token and the
// request context. It is all the navigation and the mutation workflows need.
type SessionUser struct {
	ID   int
	Name string
}
