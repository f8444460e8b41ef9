package memstore

import (
	"sync"
	"time"

	"github.com/harmonyhub/portal-api/internal/domain"
)

// ApprovalStore keeps the current admin decision per email. A later decision
// overwrites an earlier one; no history is kept.
type ApprovalStore struct {
	mu      sync.Mutex
	records map[string]domain.ApprovalRecord
}

func NewApprovalStore() *ApprovalStore {
	return &ApprovalStore{records: make(map[string]domain.ApprovalRecord)}
}

func (s *ApprovalStore) Put(email string, rec domain.ApprovalRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = rec
}

func (s *ApprovalStore) Get(email string) (domain.ApprovalRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[email]
	return rec, ok
}

// VerifiedSet records emails that completed the code flow. Membership is
// permanent for the process lifetime, which is what makes re-verification
// idempotent.
type VerifiedSet struct {
	mu    sync.Mutex
	items map[string]time.Time
}

func NewVerifiedSet() *VerifiedSet {
	return &VerifiedSet{items: make(map[string]time.Time)}
}

func (s *VerifiedSet) Add(email string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[email]; !ok {
		s.items[email] = at
	}
}

func (s *VerifiedSet) Contains(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[email]
	return ok
}
