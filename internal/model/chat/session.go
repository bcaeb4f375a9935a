package chat

import "time"

// Session captures per-user conversational state. It lives for the process
// lifetime and is created lazily on the first turn for a user id.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStats is a read-only projection over the full retained history of a
// session. Counts are monotonic: trimming old messages never decreases them.
type SessionStats struct {
	UserMessages      int  `json:"user_messages"`
	AssistantMessages int  `json:"assistant_messages"`
	TotalExchanges    int  `json:"total_exchanges"`
	SessionActive     bool `json:"session_active"`
}
