package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/http/respond"
	"github.com/MrJamesThe3rd/gofinances/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Name     string             `json:"name"`
	Category *category.Category `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	name := r.URL.Query().Get("name")
	if name == "" {
		respond.Error(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	key, err := h.svc.Suggest(r.Context(), userID, name)
	if err != nil {
		slog.Error("failed to suggest category", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	resp := suggestResponse{Name: name}
	if c, ok := category.Lookup(key); ok {
		resp.Category = &c
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	Pattern  string       `json:"pattern"`
	Category category.Key `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Learn(r.Context(), userID, req.Pattern, req.Category); err != nil {
		if errors.Is(err, matching.ErrEmptyPattern) || errors.Is(err, matching.ErrUnknownCategory) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("failed to learn mapping", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusCreated)
}
