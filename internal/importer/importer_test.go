package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/importer"
	"github.com/MrJamesThe3rd/gofinances/internal/matching"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

func TestService_Import(t *testing.T) {
	type mocks struct {
		txRepo    *transaction.MockRepository
		matchRepo *matching.MockRepository
	}

	tests := []struct {
		name      string
		csv       string
		setupMock func(m mocks)
		verify    func(t *testing.T, res *importer.Result)
		wantErr   error
	}{
		{
			name: "gofinances export",
			csv: `Nome;Valor;Tipo;Categoria;Data
Desenvolvimento de site;12.000,00;Entrada;Salário;01/04/2024
Hamburgueria Pizzy;59,00;Saída;Alimentação;02/04/2024
Aluguel do apartamento;1.200,00;negative;Casa;03/04/2024
`,
			setupMock: func(m mocks) {
				m.matchRepo.EXPECT().FindMatch(gomock.Any(), "user-1", "Aluguel do apartamento").Return(category.Key(""), nil)
				m.txRepo.EXPECT().AppendTransactions(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, res *importer.Result) {
				assert.Equal(t, "gofinances", res.Profile)
				require.Len(t, res.Imported, 2)

				assert.Equal(t, "Desenvolvimento de site", res.Imported[0].Name)
				assert.True(t, res.Imported[0].Amount.Equal(decimal.NewFromInt(12000)))
				assert.Equal(t, transaction.TypePositive, res.Imported[0].Type)
				assert.Equal(t, category.KeySalary, res.Imported[0].Category)
				assert.True(t, res.Imported[0].Date.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))

				assert.Equal(t, category.KeyFood, res.Imported[1].Category)
				assert.Equal(t, transaction.TypeNegative, res.Imported[1].Type)

				require.Len(t, res.Skipped, 1)
				assert.Equal(t, importer.Skipped{Line: 4, Name: "Aluguel do apartamento", Reason: "unknown category"}, res.Skipped[0])
			},
		},
		{
			name: "bank statement uses learned categories",
			csv: `Extrato de conta corrente
Período;01/04/2024 a 30/04/2024

Data;Descrição;Valor;Saldo
05/04/2024;POSTO SHELL;-150,00;850,00
06/04/2024;PIX RECEBIDO;1.000,00;1.850,00
07/04/2024;TARIFA;0,00;1.850,00

Saldo final;;;1.850,00
`,
			setupMock: func(m mocks) {
				m.matchRepo.EXPECT().FindMatch(gomock.Any(), "user-1", "POSTO SHELL").Return(category.KeyCar, nil)
				m.matchRepo.EXPECT().FindMatch(gomock.Any(), "user-1", "PIX RECEBIDO").Return(category.KeySalary, nil)
				m.matchRepo.EXPECT().FindMatch(gomock.Any(), "user-1", "TARIFA").Return(category.KeyPurchases, nil)
				m.txRepo.EXPECT().AppendTransactions(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, res *importer.Result) {
				assert.Equal(t, "extrato", res.Profile)
				require.Len(t, res.Imported, 2)

				assert.Equal(t, transaction.TypeNegative, res.Imported[0].Type)
				assert.True(t, res.Imported[0].Amount.Equal(decimal.NewFromInt(150)))
				assert.Equal(t, category.KeyCar, res.Imported[0].Category)
				assert.Equal(t, transaction.TypePositive, res.Imported[1].Type)

				require.Len(t, res.Skipped, 2)
				assert.Equal(t, "TARIFA", res.Skipped[0].Name)
				assert.Equal(t, transaction.ErrZeroAmount.Error(), res.Skipped[0].Reason)
				assert.Equal(t, "Saldo final", res.Skipped[1].Name)
				assert.Equal(t, "invalid date", res.Skipped[1].Reason)
			},
		},
		{
			name: "credit card bill with debit and credit columns",
			csv: `Data;Descrição;Débito;Crédito
10/04/2024;Livraria;89,90;
11/04/2024;Estorno Livraria;;89,90
`,
			setupMock: func(m mocks) {
				m.matchRepo.EXPECT().FindMatch(gomock.Any(), "user-1", gomock.Any()).Return(category.KeyStudies, nil).Times(2)
				m.txRepo.EXPECT().AppendTransactions(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, res *importer.Result) {
				assert.Equal(t, "fatura", res.Profile)
				require.Len(t, res.Imported, 2)
				assert.Equal(t, transaction.TypeNegative, res.Imported[0].Type)
				assert.Equal(t, transaction.TypePositive, res.Imported[1].Type)
				assert.Empty(t, res.Skipped)
			},
		},
		{
			name: "nothing importable skips registration",
			csv: `Nome;Valor;Tipo;Categoria;Data
Cinema;30,00;transfer;Lazer;01/04/2024
`,
			verify: func(t *testing.T, res *importer.Result) {
				assert.Empty(t, res.Imported)
				require.Len(t, res.Skipped, 1)
				assert.Equal(t, "invalid type", res.Skipped[0].Reason)
			},
		},
		{
			name:    "unknown layout",
			csv:     "Montante;Descricao\n10,00;Cafe\n",
			wantErr: importer.ErrUnknownFormat,
		},
		{
			name: "storage failure",
			csv: `Nome;Valor;Tipo;Categoria;Data
Cinema;30,00;Saída;Lazer;01/04/2024
`,
			setupMock: func(m mocks) {
				m.txRepo.EXPECT().AppendTransactions(gomock.Any(), "user-1", gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: errors.New("registering imported transactions"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks{
				txRepo:    transaction.NewMockRepository(ctrl),
				matchRepo: matching.NewMockRepository(ctrl),
			}

			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			svc := importer.NewService(
				transaction.NewService(m.txRepo),
				matching.NewService(m.matchRepo),
			)

			res, err := svc.Import(context.Background(), "user-1", strings.NewReader(tt.csv))
			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, importer.ErrUnknownFormat) {
					assert.ErrorIs(t, err, importer.ErrUnknownFormat)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}

				return
			}

			require.NoError(t, err)
			tt.verify(t, res)
		})
	}
}
