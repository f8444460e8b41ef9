// Package memstore holds the process-lifetime state for the account
// lifecycle: pending verification codes, admin approval decisions, and the
// set of verified emails. All stores are mutex-guarded maps keyed by
// lowercased email. Nothing here survives a restart, and nothing is shared
// across instances; that is an accepted limitation of the deployment model.
package memstore

import (
	"sync"

	"github.com/harmonyhub/portal-api/internal/domain"
)

// VerificationStore keeps at most one pending verification per email.
type VerificationStore struct {
	mu      sync.Mutex
	entries map[string]domain.PendingVerification
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{entries: make(map[string]domain.PendingVerification)}
}

// Put stores or replaces the pending entry for email. Replacing acts as an
// implicit resend.
func (s *VerificationStore) Put(email string, v domain.PendingVerification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = v
}

// Get returns the pending entry for email, expired or not. Expiry is the
// caller's concern so it can distinguish "expired" from "never registered".
func (s *VerificationStore) Get(email string) (domain.PendingVerification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[email]
	return v, ok
}

func (s *VerificationStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}
