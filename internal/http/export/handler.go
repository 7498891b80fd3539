package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/export"
	"github.com/MrJamesThe3rd/gofinances/internal/http/respond"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.export)
}

var errInvalidPeriod = errors.New("month and year must be given together, month 1-12")

// parsePeriod returns nil when neither month nor year is set.
func parsePeriod(r *http.Request) (*summary.Period, error) {
	q := r.URL.Query()
	month, year := q.Get("month"), q.Get("year")

	if month == "" && year == "" {
		return nil, nil
	}

	m, err := strconv.Atoi(month)
	if err != nil {
		return nil, errInvalidPeriod
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return nil, errInvalidPeriod
	}

	p := summary.Period{Month: time.Month(m), Year: y}
	if !p.Valid() {
		return nil, errInvalidPeriod
	}

	return &p, nil
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	period, err := parsePeriod(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "text" {
		text, err := h.svc.Text(r.Context(), userID, period)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))

		return
	}

	// Buffered so a read failure can still produce a JSON error.
	var buf bytes.Buffer

	if _, err := h.svc.Export(r.Context(), userID, period, &buf); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(period)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	slog.Error("failed to export transactions", "error", err)
	respond.Error(w, http.StatusServiceUnavailable, dashboard.ErrLoadTransactions.Error())
}
