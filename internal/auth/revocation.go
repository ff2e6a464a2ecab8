package auth

import "sync"

// RevocationSet tracks token identifiers invalidated before their natural
// expiry. Membership is consulted on every authenticated request, so reads
// must be safe against concurrent inserts. Process-local: a multi-instance
// deployment needs a shared store instead.
type RevocationSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewRevocationSet() *RevocationSet {
	return &RevocationSet{ids: make(map[string]struct{})}
}

// Revoke records a token id. Idempotent.
func (s *RevocationSet) Revoke(jti string) {
	if jti == "" {
		return
	}
	s.mu.Lock()
	s.ids[jti] = struct{}{}
	s.mu.Unlock()
}

// IsRevoked reports whether the token id has been revoked.
func (s *RevocationSet) IsRevoked(jti string) bool {
	s.mu.RLock()
	_, ok := s.ids[jti]
	s.mu.RUnlock()
	return ok
}
