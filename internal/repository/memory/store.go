// Package memory is an in-process entity store. It backs the memory store
// driver and the usecase and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"go-interview-booking/internal/domain"

	"github.com/google/uuid"
)

type state struct {
	companies  map[string]*domain.Company
	positions  map[string]*domain.Position
	interviews map[string]*domain.Interview
	users      map[string]*domain.User
	// insertion order, used by the distinct aggregations
	seq   int64
	order map[string]int64
}

func newState() *state {
	return &state{
		companies:  make(map[string]*domain.Company),
		positions:  make(map[string]*domain.Position),
		interviews: make(map[string]*domain.Interview),
		users:      make(map[string]*domain.User),
		order:      make(map[string]int64),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = cloneCompany(v)
	}
	for k, v := range s.positions {
		c.positions[k] = clonePosition(v)
	}
	for k, v := range s.interviews {
		iv := *v
		c.interviews[k] = &iv
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range s.order {
		c.order[k] = v
	}
	c.seq = s.seq
	return c
}

func (s *state) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// Store keeps every entity in memory. All operations, and whole WithTx
// callbacks, run one at a time.
type Store struct {
	mu   *sync.Mutex
	data *state
	inTx bool
	now  func() time.Time
	// newID is swappable in tests
	newID func() string
}

func New() *Store {
	return &Store{
		mu:    &sync.Mutex{},
		data:  newState(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// lock acquires the store mutex unless this handle already runs inside WithTx
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) st() *state { return s.data }

func (s *Store) Companies() domain.CompanyRepository    { return &companyRepo{s: s} }
func (s *Store) Positions() domain.PositionRepository   { return &positionRepo{s: s} }
func (s *Store) Interviews() domain.InterviewRepository { return &interviewRepo{s: s} }
func (s *Store) Users() domain.UserRepository           { return &userRepo{s: s} }

// WithTx runs fn with exclusive access to the store. When fn fails every
// change it made is discarded.
func (s *Store) WithTx(ctx context.Context, fn func(tx domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st().clone()
	tx := &Store{mu: s.mu, data: s.data, inTx: true, now: s.now, newID: s.newID}
	if err := fn(tx); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneCompany(c *domain.Company) *domain.Company {
	out := *c
	out.Tags = cloneStrings(c.Tags)
	return &out
}

func clonePosition(p *domain.Position) *domain.Position {
	out := *p
	out.Responsibilities = cloneStrings(p.Responsibilities)
	out.Requirements = cloneStrings(p.Requirements)
	out.Skills = cloneStrings(p.Skills)
	return &out
}
