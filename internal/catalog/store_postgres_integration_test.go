//go:build integration

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"appeal/internal/catalog"
	"appeal/internal/i18n"
	"appeal/pkg/domain"
	"appeal/pkg/platform/sentinel"
	"appeal/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *catalog.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = catalog.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "milestone_definitions")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestSeedIsIdempotent() {
	ctx := context.Background()

	s.Require().NoError(catalog.Seed(ctx, s.store))

	defs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(defs, len(catalog.StandardDefinitions()))

	// Reseeding on a later boot must not duplicate or reorder anything.
	s.Require().NoError(catalog.Seed(ctx, s.store))

	again, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal(defs, again)
}

func (s *PostgresStoreSuite) TestListIsCatalogOrdered() {
	ctx := context.Background()

	s.Require().NoError(catalog.Seed(ctx, s.store))

	defs, err := s.store.List(ctx)
	s.Require().NoError(err)
	for i := 1; i < len(defs); i++ {
		s.True(defs[i-1].Less(defs[i]),
			"definition %d (%dm, pos %d) should precede %d (%dm, pos %d)",
			i-1, defs[i-1].ExpectedAgeMonths, defs[i-1].Position,
			i, defs[i].ExpectedAgeMonths, defs[i].Position)
	}
}

func (s *PostgresStoreSuite) TestLocalizedColumnsRoundTrip() {
	ctx := context.Background()

	def := catalog.Definition{
		ID: domain.NewDefinitionID(),
		Title: i18n.Text{
			i18n.LocaleEnglish: "Responds to own name",
			i18n.LocaleHindi:   "अपने नाम पर प्रतिक्रिया देता है",
			i18n.LocaleKannada: "ತನ್ನ ಹೆಸರಿಗೆ ಪ್ರತಿಕ್ರಿಯಿಸುತ್ತದೆ",
		},
		Description:       i18n.Text{i18n.LocaleEnglish: "Turns toward the speaker when called."},
		ExpectedAgeMonths: 6,
		Position:          1,
	}

	created, err := s.store.CreateIfAbsent(ctx, def)
	s.Require().NoError(err)
	s.Require().True(created)

	got, err := s.store.Get(ctx, def.ID)
	s.Require().NoError(err)
	s.Equal(def, got)
}

func (s *PostgresStoreSuite) TestGetUnknownDefinition() {
	ctx := context.Background()

	_, err := s.store.Get(ctx, domain.NewDefinitionID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
