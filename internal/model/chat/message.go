package chat

import "time"

// Role identifies who authored a message within a session.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a session transcript. Messages are immutable once
// appended; Ordinal is assigned by the store and strictly increases within a
// session even after old entries are trimmed.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Ordinal   int64     `json:"ordinal"`
	CreatedAt time.Time `json:"created_at"`
}
