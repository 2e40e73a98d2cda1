package encounter

import (
	"context"
	"fmt"
	"time"

	"appeal/internal/audit"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/requestcontext"
)

// Service records and lists encounters.
type Service struct {
	store Store
	audit *audit.Publisher
}

func NewService(store Store, publisher *audit.Publisher) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("encounter store is required")
	}
	return &Service{store: store, audit: publisher}, nil
}

// RecordParams carries a new encounter. Date may be zero to mean "now".
type RecordParams struct {
	ChildID    domain.ChildID
	Type       Type
	Date       time.Time
	Notes      string
	Screenings []ScreeningResult
}

func (s *Service) Record(ctx context.Context, params RecordParams) (*Encounter, error) {
	if params.ChildID.IsNil() {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "child id is required")
	}
	if !params.Type.Valid() {
		return nil, domainerrors.Newf(domainerrors.CodeInvalidInput, "unknown encounter type %q", params.Type)
	}
	for _, sr := range params.Screenings {
		if sr.QuestionID == "" {
			return nil, domainerrors.New(domainerrors.CodeInvalidInput, "screening result missing question id")
		}
	}

	now := requestcontext.Now(ctx)
	date := params.Date
	if date.IsZero() {
		date = now
	}
	e := &Encounter{
		ID:         domain.NewEncounterID(),
		ChildID:    params.ChildID,
		Type:       params.Type,
		Date:       date,
		Notes:      params.Notes,
		Screenings: params.Screenings,
		CreatedAt:  now,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("record encounter: %w", err)
	}

	if s.audit != nil {
		_ = s.audit.Emit(ctx, audit.Event{
			Action:  audit.ActionEncounterRecorded,
			ChildID: e.ChildID,
			Actor:   actorFrom(ctx),
			Detail:  fmt.Sprintf("%s with %d screenings", e.Type, e.ScreeningCount()),
		})
	}
	return e.Clone(), nil
}

func (s *Service) ListByChild(ctx context.Context, childID domain.ChildID) ([]*Encounter, error) {
	out, err := s.store.ListByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}
	return out, nil
}

func actorFrom(ctx context.Context) string {
	if id := requestcontext.CaregiverID(ctx); id != "" {
		return id
	}
	return "system"
}
