package memory

import (
	"context"

	"github.com/dealdesk/crm-backend/internal/users/domain"
	usersrepo "github.com/dealdesk/crm-backend/internal/users/repository"
)

var _ usersrepo.Repository = (*Store)(nil)

func (s *Store) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *Store) UpdateProfile(_ context.Context, id int64, req domain.UpdateProfileRequest) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u.Email = req.Email
	u.Username = req.Username
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.UpdatedAt = s.now()

	copied := *u
	return &copied, nil
}

func (s *Store) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = passwordHash
	u.UpdatedAt = s.now()
	return nil
}
