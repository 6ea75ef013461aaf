package memstore

import (
	"context"
	"strings"
	"sync"

	"roombook/internal/domain/user"
	"roombook/internal/infra"
)

type userRecord struct {
	user *user.User
	hash string
}

// UserStore is the demo user directory. There is no real identity
// provider; accounts are registered at startup with bcrypt hashes.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]userRecord
	byID    map[string]userRecord
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]userRecord),
		byID:    make(map[string]userRecord),
	}
}

func (s *UserStore) Register(u *user.User, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := userRecord{user: u, hash: passwordHash}
	s.byEmail[strings.ToLower(u.Email())] = rec
	s.byID[u.ID()] = rec
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*user.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return rec.user, rec.hash, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return rec.user, nil
}
