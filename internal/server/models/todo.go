package models

import "time"

// Todo is a stored task record. UserID references the owning user at
// creation time; it is never re-validated afterwards, so a todo may outlive
// its owner.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TodoPatch is a partial update for a todo record; nil fields are left
// unchanged.
type TodoPatch struct {
	Title     *string
	Completed *bool
}
