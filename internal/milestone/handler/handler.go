// Package handler exposes the milestone review lifecycle over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"appeal/internal/evidence"
	"appeal/internal/milestone"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/platform/httputil"
	"appeal/pkg/requestcontext"
)

// maxEvidenceBytes caps a single uploaded clip.
const maxEvidenceBytes = 64 << 20

// Service defines the interface for milestone operations.
type Service interface {
	Get(ctx context.Context, id domain.ProgressID) (*milestone.Progress, error)
	SubmitEvidence(ctx context.Context, id domain.ProgressID, evidenceRef string) (*milestone.Progress, error)
	AIReview(ctx context.Context, id domain.ProgressID) (*milestone.Progress, error)
	HumanReview(ctx context.Context, id domain.ProgressID, approved bool) (*milestone.Progress, error)
}

// Handler handles milestone endpoints.
type Handler struct {
	logger   *slog.Logger
	service  Service
	evidence evidence.Store
	urlTTL   time.Duration
}

// New creates a new milestone Handler.
func New(service Service, evidenceStore evidence.Store, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		evidence: evidenceStore,
		urlTTL:   15 * time.Minute,
	}
}

// Register registers the milestone routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/milestones/{progressID}", h.handleGet)
	r.Post("/milestones/{progressID}/evidence", h.handleSubmitEvidence)
	r.Post("/milestones/{progressID}/ai-review", h.handleAIReview)
	r.Post("/milestones/{progressID}/review", h.handleHumanReview)
}

type progressResponse struct {
	ID             string     `json:"id"`
	ChildID        string     `json:"childId"`
	DefinitionID   string     `json:"definitionId"`
	Status         string     `json:"status"`
	EvidenceRef    string     `json:"evidenceRef,omitempty"`
	EvidenceURL    string     `json:"evidenceUrl,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseProgressID(chi.URLParam(r, "progressID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get milestone", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResponse(ctx, p))
}

// handleSubmitEvidence accepts a multipart upload, stores the clip, and
// records the submit transition with the stored reference.
func (h *Handler) handleSubmitEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseProgressID(chi.URLParam(r, "progressID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEvidenceBytes)
	file, header, err := r.FormFile("evidence")
	if err != nil {
		h.logger.WarnContext(ctx, "evidence upload rejected",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInvalidInput, "evidence file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("evidence/%s/%s", id.String(), uuid.NewString())
	ref, err := h.evidence.Put(ctx, key, contentType, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "evidence store unavailable",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnavailable, "evidence store unavailable"))
		return
	}

	p, err := h.service.SubmitEvidence(ctx, id, ref)
	if err != nil {
		h.writeServiceError(ctx, w, "submit evidence", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResponse(ctx, p))
}

func (h *Handler) handleAIReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseProgressID(chi.URLParam(r, "progressID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.AIReview(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "ai review", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResponse(ctx, p))
}

type humanReviewRequest struct {
	Approved bool `json:"approved"`
}

func (h *Handler) handleHumanReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseProgressID(chi.URLParam(r, "progressID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req humanReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	p, err := h.service.HumanReview(ctx, id, req.Approved)
	if err != nil {
		h.writeServiceError(ctx, w, "human review", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResponse(ctx, p))
}

func (h *Handler) toResponse(ctx context.Context, p *milestone.Progress) progressResponse {
	resp := progressResponse{
		ID:             p.ID.String(),
		ChildID:        p.ChildID.String(),
		DefinitionID:   p.DefinitionID.String(),
		Status:         string(p.Status),
		EvidenceRef:    p.EvidenceRef,
		CompletionDate: p.CompletionDate,
	}
	if p.EvidenceRef != "" && h.evidence != nil {
		if url, err := h.evidence.URL(ctx, p.EvidenceRef, h.urlTTL); err == nil {
			resp.EvidenceURL = url
		}
	}
	return resp
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := domainerrors.CodeOf(err)
	if code == domainerrors.CodeInternal {
		h.logger.ErrorContext(ctx, "milestone operation failed",
			"request_id", requestcontext.RequestID(ctx),
			"op", op,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInternal, "operation failed"))
		return
	}
	h.logger.WarnContext(ctx, "milestone operation rejected",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
