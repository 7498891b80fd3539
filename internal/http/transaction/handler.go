package transaction

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/http/respond"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// Learner remembers the category chosen for a transaction name.
type Learner interface {
	Learn(ctx context.Context, userID, rawPattern string, key category.Key) error
}

type Handler struct {
	svc     *transaction.Service
	learner Learner
}

func NewHandler(svc *transaction.Service, learner Learner) *Handler {
	return &Handler{svc: svc, learner: learner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type createTransactionRequest struct {
	Name     string           `json:"name"`
	Amount   decimal.Decimal  `json:"amount"`
	Type     transaction.Type `json:"type"`
	Category category.Key     `json:"category"`
	Date     time.Time        `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if !req.Category.Known() {
		respond.Error(w, http.StatusBadRequest, "unknown category")
		return
	}

	tx, err := h.svc.Register(r.Context(), userID, transaction.RegisterParams{
		Name:     req.Name,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		if transaction.IsValidation(err) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to register transaction", "error", err)
		respond.Error(w, http.StatusInternalServerError, "could not store transaction")

		return
	}

	if h.learner != nil {
		if err := h.learner.Learn(r.Context(), userID, tx.Name, tx.Category); err != nil {
			slog.Warn("failed to learn category mapping", "name", tx.Name, "error", err)
		}
	}

	respond.JSON(w, http.StatusCreated, ToResponse(*tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	txs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		respond.Error(w, http.StatusServiceUnavailable, dashboard.ErrLoadTransactions.Error())

		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(transaction.MostRecentFirst(txs)))
}
