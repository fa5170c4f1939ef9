package domain

import "time"

// User is an account holder. Password always carries the bcrypt hash, never
// the plain text, and is excluded from JSON responses.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileRequest carries a profile update. All fields are required.
type UpdateProfileRequest struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
}
