package model

// UserID uniquely identifies a user account
type UserID string

// User is a registered account
// Immutable once created; email is unique across all users
type User struct {
	ID           UserID `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"` // case-sensitive as stored
	PasswordHash string `json:"password_hash"`
}
