package transaction

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context, userID string) ([]Transaction, error)
	AppendTransactions(ctx context.Context, userID string, txs ...Transaction) error
}

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces the clock used to date registered transactions.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RegisterParams is the input of the registration flow.
// A zero Date means "now".
type RegisterParams struct {
	Name     string
	Amount   decimal.Decimal
	Type     Type
	Category category.Key
	Date     time.Time
}

// Validate checks the params the same way the registration form does.
func (p RegisterParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if p.Amount.IsZero() {
		return ErrZeroAmount
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	}

	if strings.TrimSpace(string(p.Category)) == "" {
		return ErrMissingCategory
	}

	return nil
}

func (s *Service) build(p RegisterParams) Transaction {
	date := p.Date
	if date.IsZero() {
		date = s.now()
	}

	return Transaction{
		ID:       s.newID(),
		Name:     strings.TrimSpace(p.Name),
		Type:     p.Type,
		Category: p.Category,
		Amount:   p.Amount,
		Date:     date,
	}
}

func (s *Service) Register(ctx context.Context, userID string, params RegisterParams) (*Transaction, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx := s.build(params)
	if err := s.repo.AppendTransactions(ctx, userID, tx); err != nil {
		return nil, fmt.Errorf("storing transaction: %w", err)
	}

	return &tx, nil
}

// RegisterBatch validates every entry before storing any of them.
func (s *Service) RegisterBatch(ctx context.Context, userID string, params []RegisterParams) ([]Transaction, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	if len(params) == 0 {
		return nil, nil
	}

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	txs := make([]Transaction, len(params))
	for i, p := range params {
		txs[i] = s.build(p)
	}

	if err := s.repo.AppendTransactions(ctx, userID, txs...); err != nil {
		return nil, fmt.Errorf("storing transactions: %w", err)
	}

	return txs, nil
}

// List returns the user's transactions in storage order.
func (s *Service) List(ctx context.Context, userID string) ([]Transaction, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	return s.repo.ListTransactions(ctx, userID)
}

// MostRecentFirst returns a copy of txs ordered by descending date.
// Equal dates keep the later-stored transaction first.
func MostRecentFirst(txs []Transaction) []Transaction {
	out := slices.Clone(txs)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return out
}
