package fakeserver

import (
	"sync"
	"time"
)

// StoredMessage is a message accepted by the server.
type StoredMessage struct {
	ID       int       `json:"id"`
	AppToken string    `json:"-"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Priority int       `json:"priority"`
	Date     time.Time `json:"date"`
}

// MemoryStore keeps accepted messages in memory and guards access with a RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []StoredMessage
	nextID   int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add assigns an ID to msg and stores it.
func (s *MemoryStore) Add(msg StoredMessage) StoredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = s.nextID
	s.nextID++
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns a copy of the stored messages in arrival order.
func (s *MemoryStore) Messages() []StoredMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredMessage, len(s.messages))
	copy(out, s.messages)
	return out
}
