package child

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"appeal/internal/audit"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/platform/sentinel"
	"appeal/pkg/requestcontext"
)

// MilestoneSyncer is the narrow dependency registration needs from the
// milestone service. The call is idempotent so registration may safely
// re-run it.
type MilestoneSyncer interface {
	SyncChild(ctx context.Context, childID domain.ChildID) (int, error)
}

// Service owns caregiver and child registration.
type Service struct {
	store      Store
	milestones MilestoneSyncer
	audit      *audit.Publisher
	runner     TxRunner
	tracer     oteltrace.Tracer
}

func NewService(store Store, milestones MilestoneSyncer, publisher *audit.Publisher, runner TxRunner) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("child store is required")
	}
	if milestones == nil {
		return nil, fmt.Errorf("milestone syncer is required")
	}
	if runner == nil {
		runner = NopTx{}
	}
	return &Service{
		store:      store,
		milestones: milestones,
		audit:      publisher,
		runner:     runner,
		tracer:     otel.Tracer("appeal/child"),
	}, nil
}

// RegisterCaregiverParams carries caregiver registration input.
type RegisterCaregiverParams struct {
	FirstName          string
	LastName           string
	PhoneNumber        string
	Relationship       Relationship
	LanguagePreference string
}

func (s *Service) RegisterCaregiver(ctx context.Context, params RegisterCaregiverParams) (*Caregiver, error) {
	if strings.TrimSpace(params.FirstName) == "" {
		return nil, domainerrors.New(domainerrors.CodeInvalidInput, "caregiver first name is required")
	}
	if strings.TrimSpace(params.PhoneNumber) == "" {
		return nil, domainerrors.New(domainerrors.CodeInvalidInput, "caregiver phone number is required")
	}
	if !params.Relationship.Valid() {
		return nil, domainerrors.Newf(domainerrors.CodeInvalidInput, "unknown relationship %q", params.Relationship)
	}
	if params.LanguagePreference == "" {
		params.LanguagePreference = "en"
	}

	caregiver := &Caregiver{
		ID:                 domain.NewCaregiverID(),
		FirstName:          strings.TrimSpace(params.FirstName),
		LastName:           strings.TrimSpace(params.LastName),
		PhoneNumber:        strings.TrimSpace(params.PhoneNumber),
		Relationship:       params.Relationship,
		LanguagePreference: params.LanguagePreference,
		CreatedAt:          requestcontext.Now(ctx),
	}
	if err := s.store.CreateCaregiver(ctx, caregiver); err != nil {
		return nil, fmt.Errorf("create caregiver: %w", err)
	}
	return caregiver, nil
}

// RegisterChildParams carries child enrollment input.
type RegisterChildParams struct {
	CaregiverID         domain.CaregiverID
	FirstName           string
	LastName            string
	DateOfBirth         string
	Sex                 Sex
	BirthWeightKg       *float64
	BirthHeightCm       *float64
	GestationalAgeWeeks *int
	IsAtRisk            bool
}

// RegisterChild enrolls a child under a caregiver and provisions the
// milestone board in the same request. The child row and its progress rows
// commit together, so a failed provisioning leaves nothing behind.
func (s *Service) RegisterChild(ctx context.Context, params RegisterChildParams) (*Child, error) {
	ctx, span := s.tracer.Start(ctx, "child.register")
	defer span.End()

	if strings.TrimSpace(params.FirstName) == "" {
		return nil, domainerrors.New(domainerrors.CodeInvalidInput, "child first name is required")
	}
	if !params.Sex.Valid() {
		return nil, domainerrors.Newf(domainerrors.CodeInvalidInput, "unknown sex %q", params.Sex)
	}
	dob, err := ParseDateOfBirth(params.DateOfBirth)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	if dob.After(now) {
		return nil, domainerrors.New(domainerrors.CodeInvalidInput, "date of birth is in the future")
	}
	if _, err := s.store.GetCaregiver(ctx, params.CaregiverID); err != nil {
		if isNotFound(err) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "caregiver not found")
		}
		return nil, fmt.Errorf("load caregiver: %w", err)
	}

	id := domain.NewChildID()
	child := &Child{
		ID:                  id,
		CaregiverID:         params.CaregiverID,
		Code:                enrollmentCode(id),
		FirstName:           strings.TrimSpace(params.FirstName),
		LastName:            strings.TrimSpace(params.LastName),
		DateOfBirth:         dob,
		Sex:                 params.Sex,
		BirthWeightKg:       params.BirthWeightKg,
		BirthHeightCm:       params.BirthHeightCm,
		GestationalAgeWeeks: params.GestationalAgeWeeks,
		IsAtRisk:            params.IsAtRisk,
		EnrollmentDate:      now,
		UpdatedAt:           now,
	}
	var created int
	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateChild(ctx, child); err != nil {
			return fmt.Errorf("create child: %w", err)
		}
		n, err := s.milestones.SyncChild(ctx, child.ID)
		if err != nil {
			return fmt.Errorf("provision milestones: %w", err)
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("child.id", child.ID.String()),
		attribute.Int("milestones.created", created),
	)

	s.emit(ctx, audit.Event{
		Action:  audit.ActionChildRegistered,
		ChildID: child.ID,
		Actor:   actorFrom(ctx),
		Detail:  fmt.Sprintf("enrolled with %d milestones", created),
	})
	return child, nil
}

func (s *Service) Get(ctx context.Context, id domain.ChildID) (*Child, error) {
	c, err := s.store.GetChild(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "child not found")
		}
		return nil, fmt.Errorf("load child: %w", err)
	}
	return c, nil
}

func (s *Service) GetCaregiver(ctx context.Context, id domain.CaregiverID) (*Caregiver, error) {
	c, err := s.store.GetCaregiver(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "caregiver not found")
		}
		return nil, fmt.Errorf("load caregiver: %w", err)
	}
	return c, nil
}

func (s *Service) ListByCaregiver(ctx context.Context, caregiverID domain.CaregiverID) ([]*Child, error) {
	children, err := s.store.ListChildrenByCaregiver(ctx, caregiverID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// SetAtRisk flips the clinical risk flag and records who changed it.
func (s *Service) SetAtRisk(ctx context.Context, id domain.ChildID, atRisk bool) error {
	if err := s.store.SetAtRisk(ctx, id, atRisk); err != nil {
		if isNotFound(err) {
			return domainerrors.New(domainerrors.CodeNotFound, "child not found")
		}
		return fmt.Errorf("set risk flag: %w", err)
	}
	s.emit(ctx, audit.Event{
		Action:  audit.ActionRiskFlagChanged,
		ChildID: id,
		Actor:   actorFrom(ctx),
		Detail:  fmt.Sprintf("at_risk=%t", atRisk),
	})
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Emit(ctx, event)
}

func actorFrom(ctx context.Context) string {
	if id := requestcontext.CaregiverID(ctx); id != "" {
		return id
	}
	return "system"
}

func isNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}

func enrollmentCode(id domain.ChildID) string {
	return "CID-" + strings.ToUpper(id.String()[:8])
}
