package milestone

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"appeal/internal/audit"
	"appeal/internal/catalog"
	"appeal/pkg/domain"
	dErrors "appeal/pkg/domain-errors"
	"appeal/pkg/requestcontext"
)

type MilestoneServiceSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	store    *InMemory
	catalog  *catalog.InMemory
	auditLog *audit.InMemory
	service  *Service
}

func TestMilestoneServiceSuite(t *testing.T) {
	suite.Run(t, new(MilestoneServiceSuite))
}

func (s *MilestoneServiceSuite) SetupTest() {
	s.now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.store = NewInMemory()
	s.catalog = catalog.NewInMemory()
	s.Require().NoError(catalog.Seed(s.ctx, s.catalog))
	s.auditLog = audit.NewInMemory()

	var err error
	s.service, err = NewService(s.store, s.catalog, audit.NewPublisher(s.auditLog), nil)
	s.Require().NoError(err)
}

func (s *MilestoneServiceSuite) seedChild() (domain.ChildID, []*Progress) {
	childID := domain.NewChildID()
	_, err := s.service.SyncChild(s.ctx, childID)
	s.Require().NoError(err)
	rows, err := s.service.ListByChild(s.ctx, childID)
	s.Require().NoError(err)
	s.Require().NotEmpty(rows)
	return childID, rows
}

func (s *MilestoneServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := NewService(nil, s.catalog, nil, nil)
		s.Error(err)
		s.Contains(err.Error(), "progress store is required")
	})

	s.Run("nil catalog returns error", func() {
		_, err := NewService(s.store, nil, nil, nil)
		s.Error(err)
		s.Contains(err.Error(), "catalog store is required")
	})
}

func (s *MilestoneServiceSuite) TestSyncChild() {
	s.Run("creates one pending row per definition", func() {
		childID, rows := s.seedChild()

		defs, err := s.catalog.List(s.ctx)
		s.Require().NoError(err)
		s.Len(rows, len(defs))
		for _, row := range rows {
			s.Equal(StatusPending, row.Status)
			s.Equal(childID, row.ChildID)
			s.Nil(row.CompletionDate)
		}
	})

	s.Run("is idempotent", func() {
		childID, first := s.seedChild()

		created, err := s.service.SyncChild(s.ctx, childID)
		s.Require().NoError(err)
		s.Zero(created)

		second, err := s.service.ListByChild(s.ctx, childID)
		s.Require().NoError(err)
		s.Len(second, len(first))
	})

	s.Run("leaves past-due rows pending", func() {
		// The child's age never enters the sync path at all; every row is
		// PENDING no matter what.
		_, rows := s.seedChild()
		for _, row := range rows {
			s.Equal(StatusPending, row.Status)
		}
	})
}

func (s *MilestoneServiceSuite) TestTransitions() {
	s.Run("submit then ai review then approve", func() {
		_, rows := s.seedChild()
		id := rows[0].ID

		row, err := s.service.SubmitEvidence(s.ctx, id, "evidence/clip.mp4")
		s.Require().NoError(err)
		s.Equal(StatusSubmitted, row.Status)

		row, err = s.service.AIReview(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(StatusAIReviewed, row.Status)

		row, err = s.service.HumanReview(s.ctx, id, true)
		s.Require().NoError(err)
		s.Equal(StatusCompleted, row.Status)
		s.Require().NotNil(row.CompletionDate)
		s.True(row.CompletionDate.Equal(s.now))

		// Persisted state matches the returned row.
		stored, err := s.service.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(StatusCompleted, stored.Status)
	})

	s.Run("ai review on pending fails and leaves row unchanged", func() {
		_, rows := s.seedChild()
		id := rows[0].ID

		_, err := s.service.AIReview(s.ctx, id)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))

		stored, err := s.service.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(StatusPending, stored.Status)
		s.Empty(stored.EvidenceRef)
	})

	s.Run("reject then resubmit", func() {
		_, rows := s.seedChild()
		id := rows[0].ID

		_, err := s.service.SubmitEvidence(s.ctx, id, "first")
		s.Require().NoError(err)
		row, err := s.service.HumanReview(s.ctx, id, false)
		s.Require().NoError(err)
		s.Equal(StatusRejected, row.Status)
		s.Equal("first", row.EvidenceRef, "rejected row keeps its evidence reference")

		row, err = s.service.SubmitEvidence(s.ctx, id, "second")
		s.Require().NoError(err)
		s.Equal(StatusSubmitted, row.Status)
		s.Equal("second", row.EvidenceRef)
	})

	s.Run("unknown progress id", func() {
		_, err := s.service.SubmitEvidence(s.ctx, domain.NewProgressID(), "clip")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown transition kind", func() {
		_, rows := s.seedChild()
		_, err := s.service.Transition(s.ctx, rows[0].ID, TransitionKind("bogus"), TransitionPayload{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("lost race surfaces as invalid transition", func() {
		_, rows := s.seedChild()
		id := rows[0].ID
		_, err := s.service.SubmitEvidence(s.ctx, id, "clip")
		s.Require().NoError(err)

		// Simulate a competing ai-review landing between read and write by
		// mutating the store under the service.
		race, err := s.store.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Require().NoError(race.MarkAIReviewed(s.now))
		s.Require().NoError(s.store.Update(s.ctx, race, StatusSubmitted))

		_, err = s.service.AIReview(s.ctx, id)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *MilestoneServiceSuite) TestAuditTrail() {
	childID, rows := s.seedChild()
	id := rows[0].ID

	_, err := s.service.SubmitEvidence(s.ctx, id, "clip")
	s.Require().NoError(err)
	_, err = s.service.AIReview(s.ctx, id)
	s.Require().NoError(err)
	_, err = s.service.HumanReview(s.ctx, id, true)
	s.Require().NoError(err)

	events, err := s.auditLog.ListByChild(s.ctx, childID)
	s.Require().NoError(err)

	var actions []audit.Action
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	s.Equal([]audit.Action{
		audit.ActionCatalogSynced,
		audit.ActionEvidenceSubmitted,
		audit.ActionAIReviewed,
		audit.ActionReviewApproved,
	}, actions)
}
