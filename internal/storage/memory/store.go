// Package memory is the in-process fallback backing. One Store holds every
// collection behind a single mutex, so multi-step operations like staging
// promotion are atomic with respect to each other in-process. There is no
// durability: a restart loses everything except the re-seeded default user.
package memory

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	clientsdomain "github.com/dealdesk/crm-backend/internal/clients/domain"
	dealsdomain "github.com/dealdesk/crm-backend/internal/deals/domain"
	"github.com/dealdesk/crm-backend/internal/storage"
	usersdomain "github.com/dealdesk/crm-backend/internal/users/domain"
)

type Store struct {
	mu sync.Mutex

	users   map[int64]*usersdomain.User
	clients map[int64]*clientsdomain.Client
	deals   map[int64]*dealsdomain.Deal
	staging map[int64]*dealsdomain.StagingDeal

	nextUserID    int64
	nextClientID  int64
	nextDealID    int64
	nextStagingID int64

	// matchCompany widens client dedup to (name, company).
	matchCompany bool

	now func() time.Time
}

func NewStore(matchCompany bool) *Store {
	s := &Store{
		matchCompany: matchCompany,
		now:          time.Now,
	}
	s.reset()
	return s
}

// Reset empties every collection and re-seeds the default user.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.users = make(map[int64]*usersdomain.User)
	s.clients = make(map[int64]*clientsdomain.Client)
	s.deals = make(map[int64]*dealsdomain.Deal)
	s.staging = make(map[int64]*dealsdomain.StagingDeal)
	s.nextUserID = 0
	s.nextClientID = 0
	s.nextDealID = 0
	s.nextStagingID = 0
	s.seedDefaultUser()
}

func (s *Store) seedDefaultUser() {
	hash, err := bcrypt.GenerateFromPassword([]byte(storage.SeedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on absurd cost values; the seed password is fixed.
		panic(err)
	}

	s.nextUserID++
	now := s.now()
	s.users[s.nextUserID] = &usersdomain.User{
		ID:        s.nextUserID,
		Email:     storage.SeedUserEmail,
		Password:  string(hash),
		Username:  storage.SeedUserUsername,
		FirstName: storage.SeedUserFirstName,
		LastName:  storage.SeedUserLastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
