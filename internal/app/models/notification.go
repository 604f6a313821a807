package models

import "time"

// Notification is a message for a student. It has no id; position identifies it.
type Notification struct {
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
