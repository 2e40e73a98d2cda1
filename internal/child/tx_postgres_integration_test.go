//go:build integration

package child_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"appeal/internal/catalog"
	"appeal/internal/child"
	"appeal/internal/i18n"
	"appeal/internal/milestone"
	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
	"appeal/pkg/testutil/containers"
)

type PostgresTxSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	runner     *child.PostgresTx
	registry   *child.PostgresStore
	milestones *milestone.PostgresStore
	catalog    *catalog.PostgresStore

	caregiverID  domain.CaregiverID
	definitionID domain.DefinitionID
}

func TestPostgresTxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTxSuite))
}

func (s *PostgresTxSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.runner = child.NewPostgresTx(s.postgres.DB)
	s.registry = child.NewPostgres(s.postgres.DB)
	s.milestones = milestone.NewPostgres(s.postgres.DB)
	s.catalog = catalog.NewPostgres(s.postgres.DB)
}

func (s *PostgresTxSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx,
		"child_milestones", "children", "caregivers", "milestone_definitions")
	s.Require().NoError(err)

	now := time.Now().UTC()
	s.caregiverID = domain.NewCaregiverID()
	s.Require().NoError(s.registry.CreateCaregiver(ctx, &child.Caregiver{
		ID:                 s.caregiverID,
		FirstName:          "Asha",
		PhoneNumber:        "+919900000001",
		Relationship:       child.RelationshipMother,
		LanguagePreference: "en",
		CreatedAt:          now,
	}))

	s.definitionID = domain.NewDefinitionID()
	created, err := s.catalog.CreateIfAbsent(ctx, catalog.Definition{
		ID:                s.definitionID,
		Title:             i18n.Text{i18n.LocaleEnglish: "Sits without support"},
		ExpectedAgeMonths: 6,
		Position:          1,
	})
	s.Require().NoError(err)
	s.Require().True(created)
}

func (s *PostgresTxSuite) newChild(now time.Time) *child.Child {
	id := domain.NewChildID()
	return &child.Child{
		ID:             id,
		CaregiverID:    s.caregiverID,
		Code:           "CID-" + id.String()[:8],
		FirstName:      "Zara",
		DateOfBirth:    now.AddDate(0, -10, 0),
		Sex:            child.SexFemale,
		EnrollmentDate: now,
		UpdatedAt:      now,
	}
}

func (s *PostgresTxSuite) TestCommitPersistsBothWrites() {
	ctx := context.Background()
	now := time.Now().UTC()
	enrolled := s.newChild(now)

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.registry.CreateChild(ctx, enrolled); err != nil {
			return err
		}
		_, err := s.milestones.CreateIfAbsent(ctx, milestone.NewPending(enrolled.ID, s.definitionID, now))
		return err
	})
	s.Require().NoError(err)

	got, err := s.registry.GetChild(ctx, enrolled.ID)
	s.Require().NoError(err)
	s.Equal(enrolled.Code, got.Code)

	rows, err := s.milestones.ListByChild(ctx, enrolled.ID)
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *PostgresTxSuite) TestFailureRollsBackBothWrites() {
	ctx := context.Background()
	now := time.Now().UTC()
	enrolled := s.newChild(now)

	provisionErr := errors.New("provisioning interrupted")
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.registry.CreateChild(ctx, enrolled); err != nil {
			return err
		}
		if _, err := s.milestones.CreateIfAbsent(ctx, milestone.NewPending(enrolled.ID, s.definitionID, now)); err != nil {
			return err
		}
		return provisionErr
	})
	s.Require().ErrorIs(err, provisionErr)

	_, err = s.registry.GetChild(ctx, enrolled.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	rows, err := s.milestones.ListByChild(ctx, enrolled.ID)
	s.Require().NoError(err)
	s.Empty(rows)
}
