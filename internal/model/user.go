// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// Identity is email/password: the email is the login name (UNIQUE in the DB,
// case-sensitive as stored) and PasswordHash holds the bcrypt digest of the
// user's password. The plaintext password never leaves the signup/login
// handlers — only the hash is stored.
//
// WHY PasswordHash HAS json:"-"?
// The `-` tag tells encoding/json to NEVER serialize this field. Without it,
// every endpoint that returns a User would leak the bcrypt hash to the client.
// The hash is one-way, but leaking it still hands attackers offline cracking
// material — so it stays server-side, always.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Name         string    `json:"name"      db:"name"`
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
