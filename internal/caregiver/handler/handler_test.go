package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"appeal/internal/audit"
	"appeal/internal/caregiver"
	caregiverhandler "appeal/internal/caregiver/handler"
	"appeal/internal/catalog"
	"appeal/internal/child"
	"appeal/internal/encounter"
	"appeal/internal/i18n"
	"appeal/internal/milestone"
	"appeal/pkg/requestcontext"
)

type CaregiverHandlerSuite struct {
	suite.Suite

	now      time.Time
	router   *chi.Mux
	children *child.Service
}

func TestCaregiverHandlerSuite(t *testing.T) {
	suite.Run(t, new(CaregiverHandlerSuite))
}

func (s *CaregiverHandlerSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), s.now)

	catalogStore := catalog.NewInMemory()
	s.Require().NoError(catalog.Seed(ctx, catalogStore))
	publisher := audit.NewPublisher(audit.NewInMemory())

	milestones, err := milestone.NewService(milestone.NewInMemory(), catalogStore, publisher, nil)
	s.Require().NoError(err)
	s.children, err = child.NewService(child.NewInMemory(), milestones, publisher, child.NopTx{})
	s.Require().NoError(err)
	encounters, err := encounter.NewService(encounter.NewInMemory(), publisher)
	s.Require().NoError(err)
	service, err := caregiver.NewService(s.children, milestones, encounters, catalogStore, i18n.NewStatic())
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	caregiverhandler.New(service, logger).Register(s.router)
}

func (s *CaregiverHandlerSuite) enroll() *child.Child {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	cg, err := s.children.RegisterCaregiver(ctx, child.RegisterCaregiverParams{
		FirstName:    "Priya",
		PhoneNumber:  "+919900112233",
		Relationship: child.RelationshipMother,
	})
	s.Require().NoError(err)

	c, err := s.children.RegisterChild(ctx, child.RegisterChildParams{
		CaregiverID: cg.ID,
		FirstName:   "Zara",
		DateOfBirth: s.now.AddDate(0, 0, -300).Format(child.DateOfBirthLayout),
		Sex:         child.SexFemale,
	})
	s.Require().NoError(err)
	return c
}

func (s *CaregiverHandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(requestcontext.WithTime(req.Context(), s.now))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *CaregiverHandlerSuite) TestDashboard() {
	c := s.enroll()

	rec := s.get("/caregivers/" + c.CaregiverID.String() + "/dashboard")
	s.Require().Equal(http.StatusOK, rec.Code)

	var cards []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &cards))
	s.Require().Len(cards, 1)
	s.Equal("Zara", cards[0]["name"])
	s.Equal("AMBER", cards[0]["status"])
	s.Equal("10 months", cards[0]["ageLabel"])
	s.Contains(cards[0]["statusLabel"], "tasks pending")
}

func (s *CaregiverHandlerSuite) TestBoardLocalized() {
	c := s.enroll()

	req := httptest.NewRequest(http.MethodGet, "/children/"+c.ID.String()+"/board", nil)
	ctx := requestcontext.WithTime(req.Context(), s.now)
	ctx = requestcontext.WithLocale(ctx, string(i18n.LocaleHindi))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req.WithContext(ctx))
	s.Require().Equal(http.StatusOK, rec.Code)

	var items []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	s.Require().Len(items, len(catalog.StandardDefinitions()))
	for _, item := range items {
		s.NotEmpty(item["title"])
		s.NotEmpty(item["displayState"])
	}
}

func (s *CaregiverHandlerSuite) TestActions() {
	c := s.enroll()

	rec := s.get("/children/" + c.ID.String() + "/actions")
	s.Require().Equal(http.StatusOK, rec.Code)

	var plan []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &plan))
	s.Require().NotEmpty(plan)
	for _, action := range plan {
		s.Equal("video", action["type"])
		s.NotEmpty(action["milestoneId"])
	}
}

func (s *CaregiverHandlerSuite) TestTimeline() {
	c := s.enroll()

	rec := s.get("/children/" + c.ID.String() + "/timeline")
	s.Require().Equal(http.StatusOK, rec.Code)

	var events []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &events))
	s.Require().Len(events, 1)
	s.Equal("enrollment", events[0]["type"])
	s.Contains(events[0]["title"], "APPEAL")
}

func (s *CaregiverHandlerSuite) TestOverviewUnknownChild() {
	rec := s.get("/children/" + strings.Repeat("0", 8) + "/overview")
	s.Equal(http.StatusBadRequest, rec.Code)
}
