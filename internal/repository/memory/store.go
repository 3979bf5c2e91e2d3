package memory

import (
	"context"
	"sort"
	"time"

	"prodroster/internal/domain"
)

type state struct {
	accounts   map[string]*domain.Account
	ephemeral  map[string]*domain.EphemeralInvite
	persistent map[string]*domain.PersistentInvite
	seats      map[string]*domain.SeatCount
}

func newState() *state {
	return &state{
		accounts:   make(map[string]*domain.Account),
		ephemeral:  make(map[string]*domain.EphemeralInvite),
		persistent: make(map[string]*domain.PersistentInvite),
		seats:      make(map[string]*domain.SeatCount),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v.Clone()
	}
	for k, v := range s.ephemeral {
		c.ephemeral[k] = v.Clone()
	}
	for k, v := range s.persistent {
		c.persistent[k] = v.Clone()
	}
	for k, v := range s.seats {
		sc := *v
		c.seats[k] = &sc
	}
	return c
}

// lock is a mutex whose acquisition can be abandoned when a context ends.
type lock chan struct{}

func newLock() lock { return make(lock, 1) }

func (l lock) Lock()   { l <- struct{}{} }
func (l lock) Unlock() { <-l }

func (l lock) LockContext(ctx context.Context) error {
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Store is an in-process domain.Store. Transactions run one at a time against a
// private copy of the data that replaces the live copy on commit.
type Store struct {
	mu         lock
	st         *state
	maxRetries int

	// conflicts makes the next N commit attempts fail as if a concurrent writer won.
	conflicts int
}

// NewStore returns an empty store. maxRetries bounds re-runs after a commit conflict.
func NewStore(maxRetries int) *Store {
	return &Store{mu: newLock(), st: newState(), maxRetries: maxRetries}
}

// InjectConflicts makes the next n commit attempts fail with a conflict.
func (s *Store) InjectConflicts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = n
}

func (s *Store) view() *view { return &view{mu: s.mu, st: func() *state { return s.st }} }

func (s *Store) Accounts() domain.AccountRepository {
	return accountRepo{s.view()}
}

func (s *Store) EphemeralInvites() domain.EphemeralInviteRepository {
	return ephemeralRepo{s.view()}
}

func (s *Store) PersistentInvites() domain.PersistentInviteRepository {
	return persistentRepo{s.view()}
}

func (s *Store) Seats() domain.SeatCountRepository {
	return seatRepo{s.view()}
}

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx domain.Repositories) error) error {
	if err := s.mu.LockContext(ctx); err != nil {
		return domain.Upstream("begin transaction", err)
	}
	defer s.mu.Unlock()

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.Upstream("begin transaction", err)
		}
		snapshot := s.st.clone()
		tx := &txRepos{v: &view{st: func() *state { return snapshot }}}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		if s.conflicts > 0 {
			s.conflicts--
			continue
		}
		s.st = snapshot
		return nil
	}
	return domain.ErrTxConflict
}

// view resolves the state a repository operates on. Transaction views carry no
// lock because the owning Store already holds it.
type view struct {
	mu lock
	st func() *state
}

func (v *view) do(fn func(st *state) error) error {
	if v.mu != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
	}
	return fn(v.st())
}

type txRepos struct{ v *view }

func (t *txRepos) Accounts() domain.AccountRepository                   { return accountRepo{t.v} }
func (t *txRepos) EphemeralInvites() domain.EphemeralInviteRepository   { return ephemeralRepo{t.v} }
func (t *txRepos) PersistentInvites() domain.PersistentInviteRepository { return persistentRepo{t.v} }
func (t *txRepos) Seats() domain.SeatCountRepository                    { return seatRepo{t.v} }

type accountRepo struct{ v *view }

func (r accountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	var out *domain.Account
	err := r.v.do(func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		out = a.Clone()
		return nil
	})
	return out, err
}

func (r accountRepo) Upsert(_ context.Context, a *domain.Account) error {
	return r.v.do(func(st *state) error {
		st.accounts[a.ID] = a.Clone()
		return nil
	})
}

func (r accountRepo) ListByProID(_ context.Context, proID string) ([]*domain.Account, error) {
	return r.list(func(a *domain.Account) bool { return a.ProID == proID })
}

func (r accountRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Account, error) {
	return r.list(func(a *domain.Account) bool { return a.Role == role })
}

func (r accountRepo) CountMembers(_ context.Context, proID string, role domain.Role) (int, error) {
	members, err := r.list(func(a *domain.Account) bool { return a.ProID == proID && a.Role == role })
	return len(members), err
}

func (r accountRepo) list(match func(*domain.Account) bool) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0)
	err := r.v.do(func(st *state) error {
		for _, a := range st.accounts {
			if match(a) {
				out = append(out, a.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

type ephemeralRepo struct{ v *view }

func (r ephemeralRepo) Create(_ context.Context, inv *domain.EphemeralInvite) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.ephemeral[inv.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, e := range st.ephemeral {
			if e.TokenDigest == inv.TokenDigest {
				return domain.ErrDuplicate
			}
		}
		st.ephemeral[inv.ID] = inv.Clone()
		return nil
	})
}

func (r ephemeralRepo) GetByDigest(_ context.Context, digest string) (*domain.EphemeralInvite, error) {
	var out *domain.EphemeralInvite
	err := r.v.do(func(st *state) error {
		for _, e := range st.ephemeral {
			if e.TokenDigest == digest {
				out = e.Clone()
				return nil
			}
		}
		return domain.ErrInviteNotFound
	})
	return out, err
}

func (r ephemeralRepo) MarkClaimed(_ context.Context, inv *domain.EphemeralInvite) error {
	return r.v.do(func(st *state) error {
		e, ok := st.ephemeral[inv.ID]
		if !ok {
			return domain.ErrInviteNotFound
		}
		e.Claimed = inv.Claimed
		e.ClaimedBy = inv.ClaimedBy
		e.ClaimedAt = inv.Clone().ClaimedAt
		return nil
	})
}

func (r ephemeralRepo) ListByProID(_ context.Context, proID string) ([]*domain.EphemeralInvite, error) {
	out := make([]*domain.EphemeralInvite, 0)
	err := r.v.do(func(st *state) error {
		for _, e := range st.ephemeral {
			if e.ProID == proID {
				out = append(out, e.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r ephemeralRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		for id, e := range st.ephemeral {
			if e.ExpiredAt(now) {
				delete(st.ephemeral, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

type persistentRepo struct{ v *view }

func (r persistentRepo) Create(_ context.Context, inv *domain.PersistentInvite) error {
	return r.v.do(func(st *state) error {
		for _, p := range st.persistent {
			if p.ID == inv.ID || (p.ProID == inv.ProID && p.Role == inv.Role) || p.TokenDigest == inv.TokenDigest {
				return domain.ErrDuplicate
			}
		}
		st.persistent[inv.ID] = inv.Clone()
		return nil
	})
}

func (r persistentRepo) GetByProAndRole(_ context.Context, proID string, role domain.Role) (*domain.PersistentInvite, error) {
	return r.find(func(p *domain.PersistentInvite) bool { return p.ProID == proID && p.Role == role })
}

func (r persistentRepo) GetByDigest(_ context.Context, digest string) (*domain.PersistentInvite, error) {
	return r.find(func(p *domain.PersistentInvite) bool { return p.TokenDigest == digest })
}

func (r persistentRepo) find(match func(*domain.PersistentInvite) bool) (*domain.PersistentInvite, error) {
	var out *domain.PersistentInvite
	err := r.v.do(func(st *state) error {
		for _, p := range st.persistent {
			if match(p) {
				out = p.Clone()
				return nil
			}
		}
		return domain.ErrInviteNotFound
	})
	return out, err
}

func (r persistentRepo) Update(_ context.Context, inv *domain.PersistentInvite) error {
	return r.v.do(func(st *state) error {
		p, ok := st.persistent[inv.ID]
		if !ok {
			return domain.ErrInviteNotFound
		}
		p.TokenDigest = inv.TokenDigest
		p.MaxRedemptions = inv.MaxRedemptions
		p.RedeemedCount = inv.RedeemedCount
		p.Active = inv.Active
		p.UpdatedAt = inv.UpdatedAt
		return nil
	})
}

func (r persistentRepo) AppendRedemption(_ context.Context, inviteID string, red domain.Redemption) error {
	return r.v.do(func(st *state) error {
		p, ok := st.persistent[inviteID]
		if !ok {
			return domain.ErrInviteNotFound
		}
		p.Redemptions = append(p.Redemptions, red)
		return nil
	})
}

func (r persistentRepo) ClearRedemptions(_ context.Context, inviteID string) error {
	return r.v.do(func(st *state) error {
		p, ok := st.persistent[inviteID]
		if !ok {
			return domain.ErrInviteNotFound
		}
		p.Redemptions = nil
		return nil
	})
}

type seatRepo struct{ v *view }

func (r seatRepo) Get(_ context.Context, proID string) (*domain.SeatCount, error) {
	var out *domain.SeatCount
	err := r.v.do(func(st *state) error {
		c, ok := st.seats[proID]
		if !ok {
			return domain.ErrTeamNotFound
		}
		sc := *c
		out = &sc
		return nil
	})
	return out, err
}

func (r seatRepo) Put(_ context.Context, c *domain.SeatCount) error {
	return r.v.do(func(st *state) error {
		sc := *c
		st.seats[c.ProID] = &sc
		return nil
	})
}

func (r seatRepo) ListProIDs(_ context.Context) ([]string, error) {
	var out []string
	err := r.v.do(func(st *state) error {
		for id := range st.seats {
			out = append(out, id)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
