package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/matching/store"
)

func TestStore_FindMatch(t *testing.T) {
	db, err := database.Open(database.SQLite, filepath.Join(t.TempDir(), "matching.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := store.New(db)
	ctx := context.Background()

	require.NoError(t, s.CreateMapping(ctx, "user-1", "posto", category.KeyCar))
	require.NoError(t, s.CreateMapping(ctx, "user-1", "posto ipiranga cafe", category.KeyFood))
	require.NoError(t, s.CreateMapping(ctx, "user-1", "curso", category.KeyPurchases))
	require.NoError(t, s.CreateMapping(ctx, "user-1", "curso", category.KeyStudies))
	require.NoError(t, s.CreateMapping(ctx, "user-2", "cinema", category.KeyLeisure))
	require.NoError(t, s.CreateMapping(ctx, "user-1", "açougue", category.KeyFood))
	require.NoError(t, s.CreateMapping(ctx, "user-1", "ÓTICA", category.KeyPurchases))
	require.NoError(t, s.CreateMapping(ctx, "user-1", "Ótica", category.KeyCar))

	tests := []struct {
		name   string
		userID string
		input  string
		want   category.Key
	}{
		{name: "case insensitive substring", userID: "user-1", input: "PAG*POSTO SHELL", want: category.KeyCar},
		{name: "longest pattern wins", userID: "user-1", input: "Posto Ipiranga Cafe Expresso", want: category.KeyFood},
		{name: "relearned pattern overrides", userID: "user-1", input: "Curso de Go", want: category.KeyStudies},
		{name: "mappings are per user", userID: "user-1", input: "Cinema", want: ""},
		{name: "other user", userID: "user-2", input: "cinema shopping", want: category.KeyLeisure},
		{name: "no match", userID: "user-1", input: "Padaria", want: ""},
		{name: "non-ASCII letters fold", userID: "user-1", input: "AÇOUGUE BOI GORDO", want: category.KeyFood},
		{name: "relearning folds to one pattern", userID: "user-1", input: "ótica diniz", want: category.KeyCar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindMatch(ctx, tt.userID, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
