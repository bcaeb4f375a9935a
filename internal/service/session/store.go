package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arvinlabs/arvin-backend/internal/model/chat"
)

var ErrUserRequired = errors.New("user id is required")

// ContextWindow is the fixed number of trailing messages handed to the
// generation service.
const ContextWindow = 10

// DefaultHistoryCap bounds the retained history per user. Trimming drops
// the oldest messages but never reassigns ordinals or resets stats.
const DefaultHistoryCap = 1000

// Store is the session abstraction injected into the turn orchestrator.
// Implementations must serialize mutations per user id while allowing full
// concurrency across distinct user ids.
type Store interface {
	GetOrCreate(ctx context.Context, userID string) (chat.Session, error)
	Append(ctx context.Context, userID string, role chat.Role, content string) (chat.Message, error)
	Recent(ctx context.Context, userID string, n int) ([]chat.Message, error)
	Clear(ctx context.Context, userID string) error
	Stats(ctx context.Context, userID string) (chat.SessionStats, error)
}

// userSession owns one user's transcript. Its mutex serializes appends and
// reads for that user only; the store-level lock guards the key space.
type userSession struct {
	mu             sync.Mutex
	session        chat.Session
	messages       []chat.Message
	nextOrdinal    int64
	userCount      int
	assistantCount int
}

// MemoryStore keeps sessions in process memory for the process lifetime.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*userSession
	historyCap int
}

// NewMemoryStore bootstraps the in-memory store. A historyCap below 1
// falls back to DefaultHistoryCap.
func NewMemoryStore(historyCap int) *MemoryStore {
	if historyCap < 1 {
		historyCap = DefaultHistoryCap
	}
	return &MemoryStore{
		sessions:   make(map[string]*userSession),
		historyCap: historyCap,
	}
}

// GetOrCreate returns the existing session for userID or lazily creates an
// empty one.
func (s *MemoryStore) GetOrCreate(_ context.Context, userID string) (chat.Session, error) {
	us, err := s.lookupOrCreate(userID)
	if err != nil {
		return chat.Session{}, err
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	return us.session, nil
}

// Append records a message with the next ordinal for userID, creating the
// session if absent. The stored message is returned with its assigned id,
// ordinal, and timestamp.
func (s *MemoryStore) Append(_ context.Context, userID string, role chat.Role, content string) (chat.Message, error) {
	us, err := s.lookupOrCreate(userID)
	if err != nil {
		return chat.Message{}, err
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	msg := chat.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		Ordinal:   us.nextOrdinal,
		CreatedAt: time.Now().UTC(),
	}
	us.nextOrdinal++

	us.messages = append(us.messages, msg)
	switch role {
	case chat.RoleUser:
		us.userCount++
	case chat.RoleAssistant:
		us.assistantCount++
	}

	if len(us.messages) > s.historyCap {
		overflow := len(us.messages) - s.historyCap
		us.messages = append(us.messages[:0:0], us.messages[overflow:]...)
	}

	return msg, nil
}

// Recent returns the last n messages for userID in original order. An
// absent session yields an empty slice, not an error.
func (s *MemoryStore) Recent(_ context.Context, userID string, n int) ([]chat.Message, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if n < 1 {
		return nil, nil
	}

	s.mu.RLock()
	us, ok := s.sessions[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	start := 0
	if len(us.messages) > n {
		start = len(us.messages) - n
	}

	copied := make([]chat.Message, len(us.messages)-start)
	copy(copied, us.messages[start:])
	return copied, nil
}

// Clear removes the session entirely. Clearing an absent session is a
// no-op; a later GetOrCreate yields a fresh empty session.
func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// Stats reports counts over the full history ever appended for userID,
// independent of trimming. An absent session reports an inactive session.
func (s *MemoryStore) Stats(_ context.Context, userID string) (chat.SessionStats, error) {
	if userID == "" {
		return chat.SessionStats{}, ErrUserRequired
	}

	s.mu.RLock()
	us, ok := s.sessions[userID]
	s.mu.RUnlock()
	if !ok {
		return chat.SessionStats{}, nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	return chat.SessionStats{
		UserMessages:      us.userCount,
		AssistantMessages: us.assistantCount,
		TotalExchanges:    min(us.userCount, us.assistantCount),
		SessionActive:     us.userCount+us.assistantCount > 0,
	}, nil
}

func (s *MemoryStore) lookupOrCreate(userID string) (*userSession, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.RLock()
	us, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return us, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if us, ok = s.sessions[userID]; ok {
		return us, nil
	}

	us = &userSession{
		session: chat.Session{
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		},
		messages: make([]chat.Message, 0, 16),
	}
	s.sessions[userID] = us
	return us, nil
}
