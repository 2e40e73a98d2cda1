package encounter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"appeal/internal/audit"
	"appeal/internal/encounter"
	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
	"appeal/pkg/requestcontext"
)

type EncounterServiceSuite struct {
	suite.Suite

	ctx        context.Context
	now        time.Time
	service    *encounter.Service
	auditStore *audit.InMemory
}

func TestEncounterServiceSuite(t *testing.T) {
	suite.Run(t, new(EncounterServiceSuite))
}

func (s *EncounterServiceSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.auditStore = audit.NewInMemory()

	var err error
	s.service, err = encounter.NewService(encounter.NewInMemory(), audit.NewPublisher(s.auditStore))
	s.Require().NoError(err)
}

func (s *EncounterServiceSuite) TestRecordDefaultsDateAndAudits() {
	childID := domain.NewChildID()

	e, err := s.service.Record(s.ctx, encounter.RecordParams{
		ChildID: childID,
		Type:    encounter.TypeHomeVisit,
		Screenings: []encounter.ScreeningResult{
			{Category: "nutrition", QuestionID: "n1", Response: "yes"},
			{Category: "development", QuestionID: "d4", Response: "no", Flagged: true},
		},
	})
	s.Require().NoError(err)
	s.Equal(s.now, e.Date)
	s.Equal(2, e.ScreeningCount())

	events, err := s.auditStore.ListByChild(s.ctx, childID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionEncounterRecorded, events[0].Action)
}

func (s *EncounterServiceSuite) TestRecordValidation() {
	s.Run("missing child", func() {
		_, err := s.service.Record(s.ctx, encounter.RecordParams{Type: encounter.TypeClinic})
		s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	})

	s.Run("unknown type", func() {
		_, err := s.service.Record(s.ctx, encounter.RecordParams{
			ChildID: domain.NewChildID(),
			Type:    encounter.Type("DRIVE_BY"),
		})
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidInput))
	})

	s.Run("screening without question id", func() {
		_, err := s.service.Record(s.ctx, encounter.RecordParams{
			ChildID:    domain.NewChildID(),
			Type:       encounter.TypeClinic,
			Screenings: []encounter.ScreeningResult{{Category: "nutrition"}},
		})
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidInput))
	})
}

func (s *EncounterServiceSuite) TestListByChildOrderedByDate() {
	childID := domain.NewChildID()
	dates := []time.Time{
		s.now.AddDate(0, 0, -1),
		s.now.AddDate(0, 0, -10),
		s.now.AddDate(0, 0, -5),
	}
	for _, d := range dates {
		_, err := s.service.Record(s.ctx, encounter.RecordParams{
			ChildID: childID,
			Type:    encounter.TypeClinic,
			Date:    d,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.ListByChild(s.ctx, childID)
	s.Require().NoError(err)
	s.Require().Len(out, 3)
	for i := 1; i < len(out); i++ {
		s.False(out[i].Date.Before(out[i-1].Date))
	}
}
