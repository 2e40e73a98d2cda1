package caregiver_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"appeal/internal/actions"
	"appeal/internal/audit"
	"appeal/internal/caregiver"
	"appeal/internal/catalog"
	"appeal/internal/child"
	"appeal/internal/dashboard"
	"appeal/internal/encounter"
	"appeal/internal/i18n"
	"appeal/internal/milestone"
	"appeal/internal/timeline"
	"appeal/pkg/domain"
	"appeal/pkg/requestcontext"
)

type CaregiverServiceSuite struct {
	suite.Suite

	ctx        context.Context
	now        time.Time
	catalog    *catalog.InMemory
	children   *child.Service
	milestones *milestone.Service
	encounters *encounter.Service
	service    *caregiver.Service
}

func TestCaregiverServiceSuite(t *testing.T) {
	suite.Run(t, new(CaregiverServiceSuite))
}

func (s *CaregiverServiceSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	s.catalog = catalog.NewInMemory()
	// A reduced catalog with known expected ages.
	for i, months := range []int{0, 2, 4, 9, 12} {
		_, err := s.catalog.CreateIfAbsent(s.ctx, catalog.Definition{
			ID:                domain.NewDefinitionID(),
			Title:             i18n.Text{i18n.LocaleEnglish: fmt.Sprintf("Milestone at %d", months)},
			ExpectedAgeMonths: months,
			Position:          i + 1,
		})
		s.Require().NoError(err)
	}

	publisher := audit.NewPublisher(audit.NewInMemory())

	var err error
	s.milestones, err = milestone.NewService(milestone.NewInMemory(), s.catalog, publisher, nil)
	s.Require().NoError(err)
	s.children, err = child.NewService(child.NewInMemory(), s.milestones, publisher, child.NopTx{})
	s.Require().NoError(err)
	s.encounters, err = encounter.NewService(encounter.NewInMemory(), publisher)
	s.Require().NoError(err)
	s.service, err = caregiver.NewService(s.children, s.milestones, s.encounters, s.catalog, i18n.NewStatic())
	s.Require().NoError(err)
}

// registerChild enrolls a child aged exactly ageMonths 30-day months as
// of s.now.
func (s *CaregiverServiceSuite) registerChild(name string, ageMonths int) *child.Child {
	return s.registerChildAt(s.ctx, name, ageMonths)
}

func (s *CaregiverServiceSuite) registerChildAt(ctx context.Context, name string, ageMonths int) *child.Child {
	cg, err := s.children.RegisterCaregiver(ctx, child.RegisterCaregiverParams{
		FirstName:    "Priya",
		PhoneNumber:  "+919900112233",
		Relationship: child.RelationshipMother,
	})
	s.Require().NoError(err)

	dob := s.now.AddDate(0, 0, -ageMonths*30)
	c, err := s.children.RegisterChild(ctx, child.RegisterChildParams{
		CaregiverID: cg.ID,
		FirstName:   name,
		DateOfBirth: dob.Format(child.DateOfBirthLayout),
		Sex:         child.SexFemale,
	})
	s.Require().NoError(err)
	return c
}

func (s *CaregiverServiceSuite) TestBoardAndActionsAtTenMonths() {
	c := s.registerChild("Zara", 10)

	board, err := s.service.MilestoneBoard(s.ctx, c.ID, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Require().Len(board, 5)

	var states []milestone.DisplayState
	for _, item := range board {
		states = append(states, item.DisplayState)
	}
	s.Equal([]milestone.DisplayState{
		milestone.DisplayActive, // 0 months
		milestone.DisplayActive, // 2 months
		milestone.DisplayActive, // 4 months
		milestone.DisplayActive, // 9 months
		milestone.DisplayLocked, // 12 months
	}, states)

	plan, err := s.service.PendingActions(s.ctx, c.ID, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Require().Len(plan, 4)
	for _, action := range plan {
		s.Equal(actions.TypeVideo, action.Type)
		s.Contains(action.Description, "Zara")
	}
}

func (s *CaregiverServiceSuite) TestPendingActionsFallback() {
	c := s.registerChild("Arun", 10)

	// Complete every due milestone.
	rows, err := s.milestones.ListByChild(s.ctx, c.ID)
	s.Require().NoError(err)
	defs := s.definitionsByID()
	for _, row := range rows {
		if defs[row.DefinitionID.String()] > 10 {
			continue
		}
		_, err := s.milestones.SubmitEvidence(s.ctx, row.ID, "evidence/clip.mp4")
		s.Require().NoError(err)
		_, err = s.milestones.AIReview(s.ctx, row.ID)
		s.Require().NoError(err)
		_, err = s.milestones.HumanReview(s.ctx, row.ID, true)
		s.Require().NoError(err)
	}

	plan, err := s.service.PendingActions(s.ctx, c.ID, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Require().Len(plan, 1)
	s.Equal(actions.TypeGeneric, plan[0].Type)
}

func (s *CaregiverServiceSuite) TestDashboardPriorities() {
	atRisk := s.registerChild("Zara", 10)
	s.Require().NoError(s.children.SetAtRisk(s.ctx, atRisk.ID, true))
	pending := s.registerChild("Arun", 10)
	newborn := s.registerChild("Meera", 0)

	s.Run("risk dominates", func() {
		cards := s.dashboardFor(atRisk)
		s.Equal(dashboard.StatusRed, cards.Status)
	})

	s.Run("pending work is amber", func() {
		cards := s.dashboardFor(pending)
		s.Equal(dashboard.StatusAmber, cards.Status)
		s.Contains(cards.StatusLabel, "tasks pending")
	})

	s.Run("age label on card", func() {
		cards := s.dashboardFor(newborn)
		s.Equal("0 months", cards.AgeLabel)
	})
}

func (s *CaregiverServiceSuite) TestTimelineIncludesVisitsAndAchievements() {
	enrollCtx := requestcontext.WithTime(context.Background(), s.now.AddDate(0, -2, 0))
	c := s.registerChildAt(enrollCtx, "Zara", 10)

	_, err := s.encounters.Record(s.ctx, encounter.RecordParams{
		ChildID: c.ID,
		Type:    encounter.TypeHomeVisit,
		Date:    s.now.AddDate(0, 0, -7),
		Screenings: []encounter.ScreeningResult{
			{Category: "nutrition", QuestionID: "n1", Response: "yes"},
		},
	})
	s.Require().NoError(err)

	rows, err := s.milestones.ListByChild(s.ctx, c.ID)
	s.Require().NoError(err)
	_, err = s.milestones.SubmitEvidence(s.ctx, rows[0].ID, "evidence/clip.mp4")
	s.Require().NoError(err)

	feed, err := s.service.Timeline(s.ctx, c.ID, i18n.LocaleEnglish)
	s.Require().NoError(err)
	// enrollment + visit + in-review milestone
	s.Require().Len(feed, 3)

	// The unresolved review floats to today, ahead of the week-old visit.
	s.Equal("milestone", feed[0].Kind())
	s.Equal("encounter", feed[1].Kind())
	s.Equal("enrollment", feed[2].Kind())

	review, ok := feed[0].(timeline.MilestoneEvent)
	s.Require().True(ok)
	s.Equal(milestone.StatusSubmitted, review.Status)
}

func (s *CaregiverServiceSuite) TestOverview() {
	c := s.registerChild("Zara", 30)

	overview, err := s.service.Overview(s.ctx, c.ID, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Equal(30, overview.AgeMonths)
	s.Equal("2 yrs 6 mo", overview.AgeLabel)
	s.Equal(dashboard.StatusAmber, overview.Status)
}

func (s *CaregiverServiceSuite) dashboardFor(c *child.Child) caregiver.ChildCard {
	cards, err := s.service.Dashboard(s.ctx, c.CaregiverID, i18n.LocaleEnglish)
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	return cards[0]
}

func (s *CaregiverServiceSuite) definitionsByID() map[string]int {
	defs, err := s.catalog.List(s.ctx)
	s.Require().NoError(err)
	out := make(map[string]int, len(defs))
	for _, def := range defs {
		out[def.ID.String()] = def.ExpectedAgeMonths
	}
	return out
}
