// Package usersmemstore keeps accounts in process memory.
package usersmemstore

import (
	"context"
	"sync"
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
)

// Store holds credentials by id with an email index for uniqueness.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]usersrepo.Credentials
	byEmail map[string]string
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]usersrepo.Credentials),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (s *Store) Create(ctx context.Context, cred usersrepo.Credentials) (usersrepo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[cred.Email]; taken {
		return usersrepo.User{}, usersrepo.ErrDuplicateEmail
	}

	now := s.now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	s.byID[cred.ID] = cred
	s.byEmail[cred.Email] = cred.ID

	return cred.User, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (usersrepo.User, error) {
	cred, err := s.GetCredentialsByID(ctx, id)
	if err != nil {
		return usersrepo.User{}, err
	}
	return cred.User, nil
}

func (s *Store) GetCredentialsByEmail(ctx context.Context, email string) (usersrepo.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return usersrepo.Credentials{}, usersrepo.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *Store) GetCredentialsByID(ctx context.Context, id string) (usersrepo.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.byID[id]
	if !ok {
		return usersrepo.Credentials{}, usersrepo.ErrNotFound
	}
	return cred, nil
}

func (s *Store) Update(ctx context.Context, id string, upd usersrepo.UpdateUser) (usersrepo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.byID[id]
	if !ok {
		return usersrepo.User{}, usersrepo.ErrNotFound
	}

	cred.User = upd.Apply(cred.User)
	cred.UpdatedAt = s.now().UTC()
	s.byID[id] = cred

	return cred.User, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.byID[id]
	if !ok {
		return usersrepo.ErrNotFound
	}

	cred.PasswordHash = hash
	cred.UpdatedAt = s.now().UTC()
	s.byID[id] = cred

	return nil
}
