// Package dashboard owns the load-then-compute sequence behind the
// dashboard and resume screens.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// ErrLoadTransactions is returned when the store read fails; the engine is not run.
var ErrLoadTransactions = errors.New("could not load transactions")

// LoadError reports a failed load. Seq is drawn from the same completion
// counter as Snapshot.Seq and Resume.Seq, so callers can order a failure
// against results that finished before or after it.
type LoadError struct {
	Seq uint64
	Err error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// SeqOf returns the completion sequence carried by err, or 0 when err did not
// come from the service.
func SeqOf(err error) uint64 {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Seq
	}

	return 0
}

// Lister reads a user's stored transactions.
type Lister interface {
	List(ctx context.Context, userID string) ([]transaction.Transaction, error)
}

// Snapshot is the dashboard view model.
type Snapshot struct {
	Seq          uint64
	UserID       string
	Highlights   summary.HighlightResult
	Transactions []transaction.Transaction // most recent first
	ComputedAt   time.Time
}

// Resume is the category breakdown view model for one period.
type Resume struct {
	Seq        uint64
	UserID     string
	Period     summary.Period
	Categories []summary.CategoryTotal
	ComputedAt time.Time
}

type Service struct {
	lister   Lister
	engine   *summary.Engine
	taxonomy []category.Category
	now      func() time.Time

	mu        sync.Mutex
	seq       uint64
	snapshots map[string]*Snapshot
	resumes   map[string]*Resume
}

func NewService(lister Lister, engine *summary.Engine) *Service {
	return &Service{
		lister:    lister,
		engine:    engine,
		taxonomy:  category.All(),
		now:       time.Now,
		snapshots: make(map[string]*Snapshot),
		resumes:   make(map[string]*Resume),
	}
}

func (s *Service) load(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	txs, err := s.lister.List(ctx, userID)
	if err != nil {
		return nil, &LoadError{Seq: s.next(), Err: fmt.Errorf("%w: %w", ErrLoadTransactions, err)}
	}

	return txs, nil
}

func (s *Service) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++

	return s.seq
}

// Load reads the user's transactions once and computes the dashboard.
// The returned snapshot is also kept as the latest one for the user, since
// it is by construction the most recently completed computation.
func (s *Service) Load(ctx context.Context, userID string) (*Snapshot, error) {
	txs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		UserID:       userID,
		Highlights:   s.engine.Highlights(txs),
		Transactions: transaction.MostRecentFirst(txs),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	snap.Seq = s.seq
	snap.ComputedAt = s.now()
	s.snapshots[userID] = snap

	return snap, nil
}

// Resume reads the user's transactions once and computes the breakdown for period.
func (s *Service) Resume(ctx context.Context, userID string, period summary.Period) (*Resume, error) {
	txs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &Resume{
		UserID:     userID,
		Period:     period,
		Categories: s.engine.CategoryBreakdown(txs, period, s.taxonomy),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	res.Seq = s.seq
	res.ComputedAt = s.now()
	s.resumes[userID] = res

	return res, nil
}

// Label renders a period with the same formatter as the computed results.
func (s *Service) Label(p summary.Period) string {
	return s.engine.Label(p)
}

// Latest returns the most recently completed dashboard snapshot for the user.
func (s *Service) Latest(userID string) (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[userID]

	return snap, ok
}

// LatestResume returns the most recently completed breakdown for the user.
func (s *Service) LatestResume(userID string) (*Resume, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.resumes[userID]

	return res, ok
}
