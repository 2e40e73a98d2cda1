// Package handler exposes the caregiver-facing projections over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appeal/internal/actions"
	"appeal/internal/caregiver"
	"appeal/internal/i18n"
	"appeal/internal/timeline"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/platform/httputil"
	"appeal/pkg/requestcontext"
)

// Service defines the interface for projection reads.
type Service interface {
	Dashboard(ctx context.Context, caregiverID domain.CaregiverID, locale i18n.Locale) ([]caregiver.ChildCard, error)
	Timeline(ctx context.Context, childID domain.ChildID, locale i18n.Locale) ([]timeline.Event, error)
	MilestoneBoard(ctx context.Context, childID domain.ChildID, locale i18n.Locale) ([]caregiver.BoardItem, error)
	PendingActions(ctx context.Context, childID domain.ChildID, locale i18n.Locale) ([]actions.Action, error)
	Overview(ctx context.Context, childID domain.ChildID, locale i18n.Locale) (*caregiver.Overview, error)
}

// Handler handles projection endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new projections Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the projection routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/caregivers/{caregiverID}/dashboard", h.handleDashboard)
	r.Get("/children/{childID}/timeline", h.handleTimeline)
	r.Get("/children/{childID}/board", h.handleBoard)
	r.Get("/children/{childID}/actions", h.handleActions)
	r.Get("/children/{childID}/overview", h.handleOverview)
}

type cardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AgeLabel    string `json:"ageLabel"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caregiverID, err := domain.ParseCaregiverID(chi.URLParam(r, "caregiverID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cards, err := h.service.Dashboard(ctx, caregiverID, localeFrom(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "dashboard", err)
		return
	}
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			AgeLabel:    c.AgeLabel,
			Status:      string(c.Status),
			StatusLabel: c.StatusLabel,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type eventResponse struct {
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Date        time.Time      `json:"date"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.service.Timeline(ctx, childID, localeFrom(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "timeline", err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type boardItemResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	DisplayState     string `json:"displayState"`
	ExpectedAgeLabel string `json:"expectedAgeLabel"`
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.service.MilestoneBoard(ctx, childID, localeFrom(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "milestone board", err)
		return
	}
	out := make([]boardItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, boardItemResponse{
			ID:               item.ProgressID.String(),
			Title:            item.Title,
			Description:      item.Description,
			DisplayState:     string(item.DisplayState),
			ExpectedAgeLabel: item.ExpectedAgeLabel,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type actionResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionLabel string `json:"actionLabel"`
	MilestoneID string `json:"milestoneId,omitempty"`
}

func (h *Handler) handleActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	plan, err := h.service.PendingActions(ctx, childID, localeFrom(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "pending actions", err)
		return
	}
	out := make([]actionResponse, 0, len(plan))
	for _, action := range plan {
		resp := actionResponse{
			Type:        string(action.Type),
			Title:       action.Title,
			Description: action.Description,
			ActionLabel: action.ActionLabel,
		}
		if !action.MilestoneID.IsNil() {
			resp.MilestoneID = action.MilestoneID.String()
		}
		out = append(out, resp)
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type overviewResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	AgeMonths   int    `json:"ageMonths"`
	AgeLabel    string `json:"ageLabel"`
	IsAtRisk    bool   `json:"isAtRisk"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	childID, err := domain.ParseChildID(chi.URLParam(r, "childID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	overview, err := h.service.Overview(ctx, childID, localeFrom(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "overview", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overviewResponse{
		ID:          overview.Child.ID.String(),
		Name:        overview.Child.DisplayName(),
		Code:        overview.Child.Code,
		AgeMonths:   overview.AgeMonths,
		AgeLabel:    overview.AgeLabel,
		IsAtRisk:    overview.Child.IsAtRisk,
		Status:      string(overview.Status),
		StatusLabel: overview.StatusLabel,
	})
}

func toEventResponse(e timeline.Event) eventResponse {
	switch ev := e.(type) {
	case timeline.EnrollmentEvent:
		return eventResponse{
			Type:        ev.Kind(),
			Title:       ev.Title,
			Date:        ev.When,
			Icon:        ev.Icon,
			Description: ev.Description,
		}
	case timeline.EncounterEvent:
		return eventResponse{
			Type:        ev.Kind(),
			Title:       ev.Title,
			Date:        ev.When,
			Icon:        ev.Icon,
			Description: ev.Description,
			Extra: map[string]any{
				"encounterType":  string(ev.EncounterType),
				"screeningCount": ev.ScreeningCount,
			},
		}
	case timeline.MilestoneEvent:
		return eventResponse{
			Type:        ev.Kind(),
			Title:       ev.Title,
			Date:        ev.When,
			Icon:        ev.Icon,
			Description: ev.Description,
			Extra: map[string]any{
				"progressId": ev.ProgressID.String(),
				"status":     string(ev.Status),
			},
		}
	default:
		return eventResponse{Type: e.Kind(), Date: e.Date()}
	}
}

func localeFrom(ctx context.Context) i18n.Locale {
	return i18n.ParseLocale(requestcontext.Locale(ctx))
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := domainerrors.CodeOf(err)
	if code == domainerrors.CodeInternal {
		h.logger.ErrorContext(ctx, "projection failed",
			"request_id", requestcontext.RequestID(ctx),
			"op", op,
			"error", err.Error(),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInternal, "operation failed"))
		return
	}
	h.logger.WarnContext(ctx, "projection rejected",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
