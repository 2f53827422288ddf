package testhelpers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"parkapp/internal/common"
	"parkapp/internal/models"
	"parkapp/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is an in-memory stand-in for the Postgres tables, enforcing the same
// unique constraints on subdomain and username.
type Store struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*models.Company
	users     map[string]*models.User
	entries   []*models.VehicleEntry
	nextID    int64

	// FailWith, when set, is returned by every call.
	FailWith error
	Now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		companies: make(map[uuid.UUID]*models.Company),
		users:     make(map[string]*models.User),
		Now:       time.Now,
	}
}

// NopLogger returns a logger that discards output.
func NopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func (s *Store) Companies() repositories.CompanyRepository   { return companyStore{s} }
func (s *Store) Users() repositories.UserRepository           { return userStore{s} }
func (s *Store) Entries() repositories.VehicleEntryRepository { return entryStore{s} }

// CompanyCount returns how many companies are stored.
func (s *Store) CompanyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

type companyStore struct{ s *Store }

func (c companyStore) Create(_ context.Context, company *models.Company) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.s.FailWith != nil {
		return c.s.FailWith
	}
	for _, existing := range c.s.companies {
		if existing.Subdomain == company.Subdomain {
			return fmt.Errorf("create company: %w", common.ErrDuplicateIdentity)
		}
	}
	company.CreatedAt = c.s.Now().UTC()
	clone := *company
	c.s.companies[company.ID] = &clone
	return nil
}

func (c companyStore) GetByID(_ context.Context, id uuid.UUID) (*models.Company, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.s.FailWith != nil {
		return nil, c.s.FailWith
	}
	company, ok := c.s.companies[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *company
	return &clone, nil
}

func (c companyStore) GetBySubdomain(_ context.Context, subdomain string) (*models.Company, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.s.FailWith != nil {
		return nil, c.s.FailWith
	}
	for _, company := range c.s.companies {
		if company.Subdomain == subdomain {
			clone := *company
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

type userStore struct{ s *Store }

func (u userStore) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.FailWith != nil {
		return u.s.FailWith
	}
	if _, ok := u.s.users[user.Username]; ok {
		return fmt.Errorf("create user: %w", common.ErrDuplicateIdentity)
	}
	if _, ok := u.s.companies[user.CompanyID]; !ok {
		return common.StorageError("create user", fmt.Errorf("foreign key violation on company %s", user.CompanyID))
	}
	user.CreatedAt = u.s.Now().UTC()
	clone := *user
	u.s.users[user.Username] = &clone
	return nil
}

func (u userStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.FailWith != nil {
		return nil, u.s.FailWith
	}
	user, ok := u.s.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

type entryStore struct{ s *Store }

func (e entryStore) Create(_ context.Context, in *models.NewVehicleEntry) (*models.VehicleEntry, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.FailWith != nil {
		return nil, e.s.FailWith
	}
	e.s.nextID++
	ts := e.s.Now().UTC()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	entry := &models.VehicleEntry{
		ID:             e.s.nextID,
		NumberPlate:    in.NumberPlate,
		DriverName:     in.DriverName,
		PassengerCount: in.PassengerCount,
		Reason:         in.Reason,
		FrontImage:     in.FrontImage,
		BackImage:      in.BackImage,
		Timestamp:      ts,
	}
	e.s.entries = append(e.s.entries, entry)
	clone := *entry
	return &clone, nil
}

func (e entryStore) MarkExited(_ context.Context, numberPlate string) (*models.VehicleEntry, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.FailWith != nil {
		return nil, e.s.FailWith
	}
	for _, entry := range e.s.entries {
		if entry.NumberPlate == numberPlate && !entry.Exited {
			now := e.s.Now().UTC()
			entry.Exited = true
			entry.ExitTime = &now
			clone := *entry
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("mark vehicle exited: %w", common.ErrNotFound)
}

func (e entryStore) List(_ context.Context, includeExited bool) ([]*models.VehicleEntry, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.FailWith != nil {
		return nil, e.s.FailWith
	}
	out := make([]*models.VehicleEntry, 0, len(e.s.entries))
	for _, entry := range e.s.entries {
		if includeExited || !entry.Exited {
			clone := *entry
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (e entryStore) Count(_ context.Context, filter models.CountFilter) (int64, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if e.s.FailWith != nil {
		return 0, e.s.FailWith
	}
	var n int64
	for _, entry := range e.s.entries {
		switch {
		case filter.Start != nil && filter.End != nil:
			if !entry.Timestamp.Before(*filter.Start) && !entry.Timestamp.After(*filter.End) {
				n++
			}
		case filter.Start != nil:
			if common.FormatDate(entry.Timestamp) == common.FormatDate(*filter.Start) {
				n++
			}
		default:
			n++
		}
	}
	return n, nil
}
