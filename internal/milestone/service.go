package milestone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"appeal/internal/audit"
	"appeal/internal/catalog"
	"appeal/internal/milestone/metrics"
	"appeal/pkg/domain"
	dErrors "appeal/pkg/domain-errors"
	"appeal/pkg/platform/sentinel"
	"appeal/pkg/requestcontext"
)

// TransitionKind names a state machine operation for the generic transition
// entry point.
type TransitionKind string

const (
	TransitionSubmitEvidence TransitionKind = "submit_evidence"
	TransitionAIReview       TransitionKind = "ai_review"
	TransitionHumanReview    TransitionKind = "human_review"
)

// TransitionPayload carries the per-kind inputs.
type TransitionPayload struct {
	EvidenceRef string
	Approved    bool
}

// Service owns the review state machine and the catalog-to-child sync.
type Service struct {
	store   Store
	catalog catalog.Store
	audit   *audit.Publisher
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewService(store Store, catalogStore catalog.Store, auditPub *audit.Publisher, m *metrics.Metrics) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("progress store is required")
	}
	if catalogStore == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	return &Service{
		store:   store,
		catalog: catalogStore,
		audit:   auditPub,
		metrics: m,
		tracer:  otel.Tracer("appeal/milestone"),
	}, nil
}

// SyncChild ensures a PENDING row exists for every catalog definition.
// Idempotent: re-invoking never duplicates or resets existing rows. All new
// rows start PENDING even when the child is past the expected age; the
// ACTIVE display-state derivation surfaces past-due items.
func (s *Service) SyncChild(ctx context.Context, childID domain.ChildID) (int, error) {
	ctx, span := s.tracer.Start(ctx, "milestone.SyncChild")
	defer span.End()

	defs, err := s.catalog.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(dErrors.CodeUnavailable, "milestone catalog unavailable", err)
	}

	now := requestcontext.Now(ctx)
	created := 0
	for _, def := range defs {
		ok, err := s.store.CreateIfAbsent(ctx, NewPending(childID, def.ID, now))
		if err != nil {
			return created, dErrors.Wrap(dErrors.CodeUnavailable, "progress store unavailable", err)
		}
		if ok {
			created++
		}
	}
	s.metrics.RecordSynced(created)

	if s.audit != nil && created > 0 {
		_ = s.audit.Emit(ctx, audit.Event{
			Action:  audit.ActionCatalogSynced,
			ChildID: childID,
			Actor:   "system",
			Detail:  fmt.Sprintf("%d progress rows created", created),
		})
	}
	span.SetAttributes(attribute.Int("milestone.rows_created", created))
	return created, nil
}

// Get loads one progress row.
func (s *Service) Get(ctx context.Context, id domain.ProgressID) (*Progress, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "progress row")
	}
	return row, nil
}

// ListByChild loads all progress rows for a child.
func (s *Service) ListByChild(ctx context.Context, childID domain.ChildID) ([]*Progress, error) {
	rows, err := s.store.ListByChild(ctx, childID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "progress store unavailable", err)
	}
	return rows, nil
}

// SubmitEvidence records an evidence reference and moves the row to SUBMITTED.
func (s *Service) SubmitEvidence(ctx context.Context, id domain.ProgressID, evidenceRef string) (*Progress, error) {
	return s.Transition(ctx, id, TransitionSubmitEvidence, TransitionPayload{EvidenceRef: evidenceRef})
}

// AIReview marks a SUBMITTED row as machine-reviewed.
func (s *Service) AIReview(ctx context.Context, id domain.ProgressID) (*Progress, error) {
	return s.Transition(ctx, id, TransitionAIReview, TransitionPayload{})
}

// HumanReview resolves a row under review: approval completes it, rejection
// sends it back for a retry.
func (s *Service) HumanReview(ctx context.Context, id domain.ProgressID, approved bool) (*Progress, error) {
	return s.Transition(ctx, id, TransitionHumanReview, TransitionPayload{Approved: approved})
}

// Transition applies one state machine operation atomically with respect to
// concurrent transitions on the same row. The row is read, mutated on a
// copy, and written back guarded on the status it was read at; a lost race
// surfaces as an invalid transition, exactly as if the competing transition
// had been observed before this one started.
func (s *Service) Transition(ctx context.Context, id domain.ProgressID, kind TransitionKind, payload TransitionPayload) (*Progress, error) {
	ctx, span := s.tracer.Start(ctx, "milestone.Transition",
		trace.WithAttributes(attribute.String("milestone.transition", string(kind))))
	defer span.End()

	start := time.Now()
	row, err := s.transition(ctx, id, kind, payload)
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.RecordTransition(string(kind), outcome, time.Since(start).Seconds())
	return row, err
}

func (s *Service) transition(ctx context.Context, id domain.ProgressID, kind TransitionKind, payload TransitionPayload) (*Progress, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "progress row")
	}

	prev := row.Status
	updated := row.Clone()
	now := requestcontext.Now(ctx)

	var action audit.Action
	switch kind {
	case TransitionSubmitEvidence:
		if err := updated.SubmitEvidence(payload.EvidenceRef, now); err != nil {
			return nil, err
		}
		action = audit.ActionEvidenceSubmitted
	case TransitionAIReview:
		if err := updated.MarkAIReviewed(now); err != nil {
			return nil, err
		}
		action = audit.ActionAIReviewed
	case TransitionHumanReview:
		if err := updated.ReviewByHuman(payload.Approved, now); err != nil {
			return nil, err
		}
		action = audit.ActionReviewApproved
		if !payload.Approved {
			action = audit.ActionReviewRejected
		}
	default:
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown transition kind %q", kind)
	}

	if err := s.store.Update(ctx, updated, prev); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "progress row not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.Newf(dErrors.CodeInvalidState,
				"progress row changed concurrently, %s no longer valid from %s", kind, prev)
		default:
			return nil, dErrors.Wrap(dErrors.CodeUnavailable, "progress store unavailable", err)
		}
	}

	if s.audit != nil {
		_ = s.audit.Emit(ctx, audit.Event{
			Action:     action,
			ChildID:    updated.ChildID,
			ProgressID: updated.ID,
			Actor:      actorFrom(ctx, kind),
			Detail:     fmt.Sprintf("%s -> %s", prev, updated.Status),
		})
	}
	return updated, nil
}

func actorFrom(ctx context.Context, kind TransitionKind) string {
	if kind == TransitionAIReview {
		return "system"
	}
	if id := requestcontext.CaregiverID(ctx); id != "" {
		return id
	}
	return "unknown"
}

func translateStoreErr(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", what)
	}
	return dErrors.Wrap(dErrors.CodeUnavailable, "progress store unavailable", err)
}
