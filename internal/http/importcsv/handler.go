package importcsv

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/http/respond"
	txhttp "github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
	"github.com/MrJamesThe3rd/gofinances/internal/importer"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Profile      string             `json:"profile"`
	Imported     int                `json:"imported"`
	Transactions []txhttp.Response  `json:"transactions"`
	Skipped      []importer.Skipped `json:"skipped"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), userID, file)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnknownFormat), transaction.IsValidation(err):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to import csv", "error", err)
			respond.Error(w, http.StatusInternalServerError, "could not import file")
		}

		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Profile:      result.Profile,
		Imported:     len(result.Imported),
		Transactions: txhttp.ToResponseList(result.Imported),
		Skipped:      result.Skipped,
	})
}
