// Package handler exposes caregiver and child registration over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appeal/internal/child"
	"appeal/internal/platform/metrics"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/platform/httputil"
	"appeal/pkg/requestcontext"
)

// Service defines the interface for registry operations.
type Service interface {
	RegisterCaregiver(ctx context.Context, params child.RegisterCaregiverParams) (*child.Caregiver, error)
	RegisterChild(ctx context.Context, params child.RegisterChildParams) (*child.Child, error)
	Get(ctx context.Context, id domain.ChildID) (*child.Child, error)
	SetAtRisk(ctx context.Context, id domain.ChildID, atRisk bool) error
}

// Handler handles registry endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
}

// New creates a new registry Handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: m,
	}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/caregivers", h.handleRegisterCaregiver)
	r.Post("/children", h.handleRegisterChild)
	r.Get("/children/{childID}", h.handleGetChild)
	r.Put("/children/{childID}/risk", h.handleSetAtRisk)
}

type registerCaregiverRequest struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	PhoneNumber        string `json:"phoneNumber"`
	Relationship       string `json:"relationship"`
	LanguagePreference string `json:"languagePreference"`
}

type caregiverResponse struct {
	ID                 string `json:"id"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	PhoneNumber        string `json:"phoneNumber"`
	Relationship       string `json:"relationship"`
	LanguagePreference string `json:"languagePreference"`
}

func (h *Handler) handleRegisterCaregiver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	caregiver, err := h.service.RegisterCaregiver(ctx, child.RegisterCaregiverParams{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		PhoneNumber:        req.PhoneNumber,
		Relationship:       child.Relationship(req.Relationship),
		LanguagePreference: req.LanguagePreference,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "register caregiver", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, caregiverResponse{
		ID:                 caregiver.ID.String(),
		FirstName:          caregiver.FirstName,
		LastName:           caregiver.LastName,
		PhoneNumber:        caregiver.PhoneNumber,
		Relationship:       string(caregiver.Relationship),
		LanguagePreference: caregiver.LanguagePreference,
	})
}

type registerChildRequest struct {
	CaregiverID         string   `json:"caregiverId"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	DateOfBirth         string   `json:"dateOfBirth"`
	Sex                 string   `json:"sex"`
	BirthWeightKg       *float64 `json:"birthWeightKg,omitempty"`
	BirthHeightCm       *float64 `json:"birthHeightCm,omitempty"`
	GestationalAgeWeeks *int     `json:"gestationalAgeWeeks,omitempty"`
	IsAtRisk            bool     `json:"isAtRisk"`
}

type childResponse struct {
	ID             string    `json:"id"`
	CaregiverID    string    `json:"caregiverId"`
	Code           string    `json:"code"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Sex            string    `json:"sex"`
	IsAtRisk       bool      `json:"isAtRisk"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

func (h *Handler) handleRegisterChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req registerChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	caregiverID, err := domain.ParseCaregiverID(req.CaregiverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.RegisterChild(ctx, child.RegisterChildParams{
		CaregiverID:         caregiverID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		DateOfBirth:         req.DateOfBirth,
		Sex:                 child.Sex(req.Sex),
		BirthWeightKg:       req.BirthWeightKg,
		BirthHeightCm:       req.BirthHeightCm,
		GestationalAgeWeeks: req.GestationalAgeWeeks,
		IsAtRisk:            req.IsAtRisk,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "register child", err)
		return
	}
	h.metrics.IncrementChildrenEnrolled()
	h.logger.InfoContext(ctx, "child enrolled",
		"request_id", requestID,
		"child_id", c.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, toChildResponse(c))
}

func (h *Handler) handleGetChild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get child", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toChildResponse(c))
}

type setRiskRequest struct {
	AtRisk bool `json:"atRisk"`
}

func (h *Handler) handleSetAtRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req setRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.service.SetAtRisk(ctx, id, req.AtRisk); err != nil {
		h.writeServiceError(ctx, w, "set risk flag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toChildResponse(c *child.Child) childResponse {
	return childResponse{
		ID:             c.ID.String(),
		CaregiverID:    c.CaregiverID.String(),
		Code:           c.Code,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		DateOfBirth:    c.DateOfBirth.Format(child.DateOfBirthLayout),
		Sex:            string(c.Sex),
		IsAtRisk:       c.IsAtRisk,
		EnrollmentDate: c.EnrollmentDate,
	}
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := domainerrors.CodeOf(err)
	if code == domainerrors.CodeInternal {
		h.logger.ErrorContext(ctx, "registry operation failed",
			"request_id", requestcontext.RequestID(ctx),
			"op", op,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInternal, "operation failed"))
		return
	}
	h.logger.WarnContext(ctx, "registry operation rejected",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
