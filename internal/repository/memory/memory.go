// Package memory provides an in-memory implementation of the repository
// interfaces for unit tests. Atomic units are simulated with a
// snapshot-and-restore around WithTx so induced failures roll back exactly
// like a database transaction would.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
)

type Store struct {
	mu sync.Mutex

	users  map[string]models.User
	goals  map[string]models.SavingsGoal
	txs    map[string][]models.SavingsTransaction
	agg    map[string]models.PersonalSavings
	audits []models.AuditLog
	notifs []models.Notification

	base time.Time
	tick int

	failTxInsert error
}

func NewStore() *Store {
	return &Store{
		users: map[string]models.User{},
		goals: map[string]models.SavingsGoal{},
		txs:   map[string][]models.SavingsTransaction{},
		agg:   map[string]models.PersonalSavings{},
		base:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// now hands out strictly increasing timestamps so ordering assertions are
// deterministic.
func (s *Store) now() time.Time {
	s.tick++
	return s.base.Add(time.Duration(s.tick) * time.Second)
}

// FailNextTransactionInsert injects one failure into the next ledger-record
// insert, for atomicity tests.
func (s *Store) FailNextTransactionInsert(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failTxInsert = err
}

// ---- seed & inspection helpers ----

func (s *Store) SeedUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return u
}

func (s *Store) SeedGoal(g models.SavingsGoal) models.SavingsGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.CreatedAt = s.now()
	g.UpdatedAt = g.CreatedAt
	s.goals[g.ID] = g
	return g
}

func (s *Store) Goal(id string) models.SavingsGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals[id]
}

func (s *Store) TransactionCount(goalID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs[goalID])
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) Aggregate(userID string) models.PersonalSavings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agg[userID]
}

func (s *Store) Audits() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}

func (s *Store) NotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifs)
}

// ---- interface accessors ----

func (s *Store) Users() repo.Users { return usersRepo{s} }

func (s *Store) Goals() repo.Goals { return goalsRepo{s} }

func (s *Store) Transactions() repo.SavingsTransactions { return txRepo{s} }

func (s *Store) PersonalSavings() repo.PersonalSavings { return aggRepo{s} }

func (s *Store) AuditLogs() repo.AuditLogs { return auditRepo{s} }

func (s *Store) Notifications() repo.Notifications { return notifRepo{s} }

// ---- users ----

type usersRepo struct{ s *Store }

func (r usersRepo) Insert(ctx context.Context, u models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.AuthID == u.AuthID {
			// conditional insert: unique constraint hit, no-op
			return nil
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = u
	return nil
}

func (r usersRepo) GetByAuthID(ctx context.Context, authID string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.AuthID == authID {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (r usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return models.User{}, repo.ErrNotFound
}

// ---- goals ----

type goalsRepo struct{ s *Store }

func (r goalsRepo) Create(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.goals[g.ID] = g
	return g, nil
}

func (r goalsRepo) GetOwned(ctx context.Context, goalID, userID string) (models.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getOwned(goalID, userID)
}

func (r goalsRepo) ListByUser(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.SavingsGoal
	for _, g := range r.s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

// Tx-scoped methods run inside WithTx, which already holds the lock.

func (r goalsRepo) GetOwnedForUpdate(ctx context.Context, tx pgx.Tx, goalID, userID string) (models.SavingsGoal, error) {
	return r.s.getOwned(goalID, userID)
}

func (r goalsRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, goalID string, delta decimal.Decimal, completed bool) (models.SavingsGoal, error) {
	g, ok := r.s.goals[goalID]
	if !ok {
		return models.SavingsGoal{}, repo.ErrNotFound
	}
	g.CurrentAmount = g.CurrentAmount.Add(delta)
	g.IsCompleted = completed
	g.UpdatedAt = r.s.now()
	r.s.goals[goalID] = g
	return g, nil
}

func (r goalsRepo) WithTx(ctx context.Context, fn func(pgx.Tx) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	goalsSnap := make(map[string]models.SavingsGoal, len(r.s.goals))
	for k, v := range r.s.goals {
		goalsSnap[k] = v
	}
	txsSnap := make(map[string][]models.SavingsTransaction, len(r.s.txs))
	for k, v := range r.s.txs {
		txsSnap[k] = append([]models.SavingsTransaction(nil), v...)
	}
	aggSnap := make(map[string]models.PersonalSavings, len(r.s.agg))
	for k, v := range r.s.agg {
		aggSnap[k] = v
	}

	if err := fn(nil); err != nil {
		r.s.goals = goalsSnap
		r.s.txs = txsSnap
		r.s.agg = aggSnap
		return err
	}
	return nil
}

func (s *Store) getOwned(goalID, userID string) (models.SavingsGoal, error) {
	g, ok := s.goals[goalID]
	if !ok || g.UserID != userID {
		return models.SavingsGoal{}, repo.ErrNotFound
	}
	return g, nil
}

// ---- savings transactions ----

type txRepo struct{ s *Store }

func (r txRepo) Insert(ctx context.Context, tx pgx.Tx, t models.SavingsTransaction) (models.SavingsTransaction, error) {
	if r.s.failTxInsert != nil {
		err := r.s.failTxInsert
		r.s.failTxInsert = nil
		return models.SavingsTransaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = r.s.now()
	r.s.txs[t.GoalID] = append(r.s.txs[t.GoalID], t)
	return t, nil
}

func (r txRepo) ListByGoal(ctx context.Context, goalID string) ([]models.SavingsTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	records := r.s.txs[goalID]
	out := make([]models.SavingsTransaction, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- { // newest first
		out = append(out, records[i])
	}
	return out, nil
}

// ---- personal savings ----

type aggRepo struct{ s *Store }

func (r aggRepo) Add(ctx context.Context, tx pgx.Tx, userID string, delta decimal.Decimal) (models.PersonalSavings, error) {
	p, ok := r.s.agg[userID]
	if !ok {
		p = models.PersonalSavings{UserID: userID, Balance: decimal.Zero}
	}
	p.Balance = p.Balance.Add(delta)
	p.LastUpdatedAt = r.s.now()
	r.s.agg[userID] = p
	return p, nil
}

func (r aggRepo) GetOrCreate(ctx context.Context, userID string) (models.PersonalSavings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.agg[userID]; ok {
		return p, nil
	}
	p := models.PersonalSavings{UserID: userID, Balance: decimal.Zero, LastUpdatedAt: r.s.now()}
	r.s.agg[userID] = p
	return p, nil
}

// ---- audit logs & notifications ----

type auditRepo struct{ s *Store }

func (r auditRepo) Create(ctx context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.CreatedAt = r.s.now()
	r.s.audits = append(r.s.audits, l)
	return nil
}

type notifRepo struct{ s *Store }

func (r notifRepo) Create(ctx context.Context, n models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = r.s.now()
	r.s.notifs = append(r.s.notifs, n)
	return nil
}

func (r notifRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Notification
	for i := len(r.s.notifs) - 1; i >= 0; i-- {
		if r.s.notifs[i].UserID == userID {
			out = append(out, r.s.notifs[i])
		}
	}
	return out, nil
}
