package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching

var (
	ErrEmptyPattern    = errors.New("pattern must not be empty")
	ErrUnknownCategory = errors.New("unknown category")
)

type Repository interface {
	FindMatch(ctx context.Context, userID, name string) (category.Key, error)
	CreateMapping(ctx context.Context, userID, rawPattern string, key category.Key) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category learned for the longest pattern contained in name.
// Returns an empty key if no match is found.
func (s *Service) Suggest(ctx context.Context, userID, name string) (category.Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}

	key, err := s.repo.FindMatch(ctx, userID, name)
	if err != nil {
		return "", err
	}

	if !key.Known() {
		return "", nil
	}

	return key, nil
}

// Learn remembers that names containing rawPattern belong to key.
func (s *Service) Learn(ctx context.Context, userID, rawPattern string, key category.Key) error {
	rawPattern = strings.TrimSpace(rawPattern)
	if rawPattern == "" {
		return ErrEmptyPattern
	}

	if !key.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}

	return s.repo.CreateMapping(ctx, userID, rawPattern, key)
}
