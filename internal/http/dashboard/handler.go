package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/http/respond"
	txhttp "github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
)

type Handler struct {
	svc *dashboard.Service
	now func() time.Time
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Routes registers the dashboard and resume endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/resume", h.resume)
}

type dashboardResponse struct {
	Seq          uint64                  `json:"seq"`
	Highlights   summary.HighlightResult `json:"highlights"`
	Transactions []txhttp.Response       `json:"transactions"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	snap, err := h.svc.Load(r.Context(), userID)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, dashboardResponse{
		Seq:          snap.Seq,
		Highlights:   snap.Highlights,
		Transactions: txhttp.ToResponseList(snap.Transactions),
	})
}

type periodResponse struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
	Label string     `json:"label"`
}

func (h *Handler) toPeriodResponse(p summary.Period) periodResponse {
	return periodResponse{Month: p.Month, Year: p.Year, Label: h.svc.Label(p)}
}

type resumeResponse struct {
	Seq        uint64                  `json:"seq"`
	Period     periodResponse          `json:"period"`
	Prev       periodResponse          `json:"prev"`
	Next       periodResponse          `json:"next"`
	Categories []summary.CategoryTotal `json:"categories"`
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	period, err := h.parsePeriod(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Resume(r.Context(), userID, period)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resumeResponse{
		Seq:        res.Seq,
		Period:     h.toPeriodResponse(res.Period),
		Prev:       h.toPeriodResponse(res.Period.Prev()),
		Next:       h.toPeriodResponse(res.Period.Next()),
		Categories: res.Categories,
	})
}

var errInvalidPeriod = errors.New("month must be 1-12 and year must be positive")

// parsePeriod reads month and year from the query, defaulting to the current month.
func (h *Handler) parsePeriod(r *http.Request) (summary.Period, error) {
	period := summary.PeriodOf(h.now())

	q := r.URL.Query()

	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return summary.Period{}, errInvalidPeriod
		}

		period.Month = time.Month(m)
	}

	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return summary.Period{}, errInvalidPeriod
		}

		period.Year = y
	}

	if !period.Valid() || period.Year < 1 {
		return summary.Period{}, errInvalidPeriod
	}

	return period, nil
}

func writeLoadError(w http.ResponseWriter, err error) {
	slog.Error("failed to compute dashboard", "error", err)

	if errors.Is(err, dashboard.ErrLoadTransactions) {
		respond.Error(w, http.StatusServiceUnavailable, dashboard.ErrLoadTransactions.Error())
		return
	}

	respond.Error(w, http.StatusInternalServerError, "internal error")
}
