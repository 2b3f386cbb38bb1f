package models

import "time"

// User is a stored account record. Password holds the bcrypt hash only;
// the plaintext never reaches this struct.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch is a partial update for a user record; nil fields are left
// unchanged.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}
