package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

var fixedNow = time.Date(2024, 4, 2, 15, 30, 0, 0, time.UTC)

func TestService_Register(t *testing.T) {
	type args struct {
		userID string
		params transaction.RegisterParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	valid := transaction.RegisterParams{
		Name:     "Hamburgueria Pizzy",
		Amount:   decimal.RequireFromString("59.00"),
		Type:     transaction.TypeNegative,
		Category: category.KeyFood,
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{userID: "user-1", params: valid},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					AppendTransactions(gomock.Any(), "user-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, txs ...transaction.Transaction) error {
						require.Len(t, txs, 1)
						assert.NotEmpty(t, txs[0].ID)
						assert.Equal(t, fixedNow, txs[0].Date)
						return nil
					})
			},
		},
		{
			name:    "MissingUser",
			args:    args{params: valid},
			wantErr: transaction.ErrMissingUser,
		},
		{
			name: "EmptyName",
			args: args{userID: "user-1", params: transaction.RegisterParams{
				Name: "  ", Amount: decimal.NewFromInt(1), Type: transaction.TypePositive, Category: category.KeySalary,
			}},
			wantErr: transaction.ErrEmptyName,
		},
		{
			name: "ZeroAmount",
			args: args{userID: "user-1", params: transaction.RegisterParams{
				Name: "Salário", Type: transaction.TypePositive, Category: category.KeySalary,
			}},
			wantErr: transaction.ErrZeroAmount,
		},
		{
			name: "NegativeAmount",
			args: args{userID: "user-1", params: transaction.RegisterParams{
				Name: "Salário", Amount: decimal.NewFromInt(-5), Type: transaction.TypePositive, Category: category.KeySalary,
			}},
			wantErr: transaction.ErrNegativeAmount,
		},
		{
			name: "MissingType",
			args: args{userID: "user-1", params: transaction.RegisterParams{
				Name: "Salário", Amount: decimal.NewFromInt(5), Category: category.KeySalary,
			}},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "MissingCategory",
			args: args{userID: "user-1", params: transaction.RegisterParams{
				Name: "Salário", Amount: decimal.NewFromInt(5), Type: transaction.TypePositive,
			}},
			wantErr: transaction.ErrMissingCategory,
		},
		{
			name: "RepoError",
			args: args{userID: "user-1", params: valid},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					AppendTransactions(gomock.Any(), "user-1", gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo).WithClock(func() time.Time { return fixedNow })
			got, err := svc.Register(context.Background(), tt.args.userID, tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				if transaction.IsValidation(tt.wantErr) || errors.Is(tt.wantErr, transaction.ErrMissingUser) {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "Hamburgueria Pizzy", got.Name)
			assert.Equal(t, fixedNow, got.Date)
		})
	}
}

func TestService_Register_KeepsGivenDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().AppendTransactions(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	svc := transaction.NewService(repo).WithClock(func() time.Time { return fixedNow })

	got, err := svc.Register(context.Background(), "user-1", transaction.RegisterParams{
		Name:     "Aluguel",
		Amount:   decimal.NewFromInt(1200),
		Type:     transaction.TypeNegative,
		Category: category.KeyPurchases,
		Date:     date,
	})
	require.NoError(t, err)
	assert.Equal(t, date, got.Date)
}

func TestService_RegisterBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	params := []transaction.RegisterParams{
		{Name: "Salário", Amount: decimal.NewFromInt(5000), Type: transaction.TypePositive, Category: category.KeySalary},
		{Name: "Mercado", Amount: decimal.NewFromInt(300), Type: transaction.TypeNegative, Category: category.KeyFood},
	}

	repo.EXPECT().
		AppendTransactions(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, txs ...transaction.Transaction) error {
			require.Len(t, txs, 2)
			assert.NotEqual(t, txs[0].ID, txs[1].ID)
			return nil
		})

	txs, err := svc.RegisterBatch(context.Background(), "user-1", params)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Salário", txs[0].Name)
	assert.Equal(t, "Mercado", txs[1].Name)
}

func TestService_RegisterBatch_ValidatesBeforeStoring(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	params := []transaction.RegisterParams{
		{Name: "Salário", Amount: decimal.NewFromInt(5000), Type: transaction.TypePositive, Category: category.KeySalary},
		{Name: "", Amount: decimal.NewFromInt(300), Type: transaction.TypeNegative, Category: category.KeyFood},
	}

	txs, err := svc.RegisterBatch(context.Background(), "user-1", params)
	require.ErrorIs(t, err, transaction.ErrEmptyName)
	assert.Contains(t, err.Error(), "entry 2")
	assert.Nil(t, txs)
}

func TestService_List(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), "user-1").
					Return([]transaction.Transaction{{ID: "a"}, {ID: "b"}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "Error",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), "user-1").
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := transaction.NewService(repo).List(context.Background(), "user-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestMostRecentFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC) }

	txs := []transaction.Transaction{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(3)},
		{ID: "c", Date: day(2)},
		{ID: "d", Date: day(3)},
	}

	got := transaction.MostRecentFirst(txs)

	ids := make([]string, len(got))
	for i, tx := range got {
		ids[i] = tx.ID
	}

	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)
	assert.Equal(t, "a", txs[0].ID, "input must not be reordered")
}
