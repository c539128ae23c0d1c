package fakeserver

import (
	"net/http/httptest"

	"go.uber.org/zap"
)

// Server is a running fake notification server.
type Server struct {
	*httptest.Server
	store *MemoryStore
}

// Start serves a fake notification server on a loopback port accepting the
// given application tokens. Callers must Close it.
func Start(logger *zap.Logger, tokens []string, opts ...RouterOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewMemoryStore()
	handler := NewHandler(store, tokens)
	return &Server{
		Server: httptest.NewServer(NewRouter(handler, logger, opts...)),
		store:  store,
	}
}

// Messages returns the messages accepted so far.
func (s *Server) Messages() []StoredMessage {
	return s.store.Messages()
}
