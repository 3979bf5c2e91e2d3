package memory

import (
	"context"
	"sync"

	"prodroster/internal/domain"
)

// IdentityStore is an in-process domain.IdentityStore.
type IdentityStore struct {
	mu     sync.RWMutex
	claims map[string]domain.Claims
	writes int
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{claims: make(map[string]domain.Claims)}
}

func (s *IdentityStore) GetClaims(_ context.Context, accountID string) (domain.Claims, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.claims[accountID]
	if !ok {
		return domain.Claims{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *IdentityStore) PutClaims(_ context.Context, accountID string, claims domain.Claims) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims[accountID] = claims
	s.writes++
	return nil
}

func (s *IdentityStore) FindByEmail(_ context.Context, email string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, c := range s.claims {
		if c.Email != "" && c.Email == email {
			return id, nil
		}
	}
	return "", domain.ErrNotFound
}

func (s *IdentityStore) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[accountID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.claims, accountID)
	return nil
}

// Writes returns how many times claims were written.
func (s *IdentityStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
