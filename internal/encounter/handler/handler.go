// Package handler exposes encounter recording over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appeal/internal/encounter"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/platform/httputil"
	"appeal/pkg/requestcontext"
)

// Service defines the interface for encounter operations.
type Service interface {
	Record(ctx context.Context, params encounter.RecordParams) (*encounter.Encounter, error)
	ListByChild(ctx context.Context, childID domain.ChildID) ([]*encounter.Encounter, error)
}

// Handler handles encounter endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new encounter Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the encounter routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/children/{childID}/encounters", h.handleRecord)
	r.Get("/children/{childID}/encounters", h.handleList)
}

type screeningRequest struct {
	Category   string `json:"category"`
	QuestionID string `json:"questionId"`
	Response   string `json:"response"`
	Flagged    bool   `json:"flagged"`
}

type recordRequest struct {
	Type       string             `json:"type"`
	Date       *time.Time         `json:"date,omitempty"`
	Notes      string             `json:"notes"`
	Screenings []screeningRequest `json:"screenings"`
}

type encounterResponse struct {
	ID             string    `json:"id"`
	ChildID        string    `json:"childId"`
	Type           string    `json:"type"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes,omitempty"`
	ScreeningCount int       `json:"screeningCount"`
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}

	params := encounter.RecordParams{
		ChildID: childID,
		Type:    encounter.Type(req.Type),
		Notes:   req.Notes,
	}
	if req.Date != nil {
		params.Date = *req.Date
	}
	for _, sr := range req.Screenings {
		params.Screenings = append(params.Screenings, encounter.ScreeningResult{
			Category:   sr.Category,
			QuestionID: sr.QuestionID,
			Response:   sr.Response,
			Flagged:    sr.Flagged,
		})
	}

	e, err := h.service.Record(ctx, params)
	if err != nil {
		h.writeServiceError(ctx, w, "record encounter", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListByChild(ctx, childID)
	if err != nil {
		h.writeServiceError(ctx, w, "list encounters", err)
		return
	}
	out := make([]encounterResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func toResponse(e *encounter.Encounter) encounterResponse {
	return encounterResponse{
		ID:             e.ID.String(),
		ChildID:        e.ChildID.String(),
		Type:           string(e.Type),
		Date:           e.Date,
		Notes:          e.Notes,
		ScreeningCount: e.ScreeningCount(),
	}
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := domainerrors.CodeOf(err)
	if code == domainerrors.CodeInternal {
		h.logger.ErrorContext(ctx, "encounter operation failed",
			"request_id", requestcontext.RequestID(ctx),
			"op", op,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInternal, "operation failed"))
		return
	}
	h.logger.WarnContext(ctx, "encounter operation rejected",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
