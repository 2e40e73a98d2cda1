// Package caregiver is the read side: it composes the registry,
// milestone tracker, encounter log and localization provider into the
// projections the app renders.
package caregiver

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"appeal/internal/actions"
	"appeal/internal/age"
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

// ChildCard is one row on the caregiver's home dashboard.
type ChildCard struct {
	ID          domain.ChildID
	Name        string
	AgeLabel    string
	Status      dashboard.Status
	StatusLabel string
}

// BoardItem is one milestone on the child's board, in catalog order.
type BoardItem struct {
	ProgressID       domain.ProgressID
	Title            string
	Description      string
	DisplayState     milestone.DisplayState
	ExpectedAgeLabel string
}

// Overview is the single-child header: identity plus current status.
type Overview struct {
	Child       *child.Child
	AgeMonths   int
	AgeLabel    string
	Status      dashboard.Status
	StatusLabel string
}

// Service composes the projections.
type Service struct {
	children   *child.Service
	milestones *milestone.Service
	encounters *encounter.Service
	catalog    catalog.Store
	labels     i18n.Provider
	tracer     oteltrace.Tracer
}

func NewService(
	children *child.Service,
	milestones *milestone.Service,
	encounters *encounter.Service,
	catalogStore catalog.Store,
	labels i18n.Provider,
) (*Service, error) {
	if children == nil || milestones == nil || encounters == nil || catalogStore == nil || labels == nil {
		return nil, fmt.Errorf("all caregiver service dependencies are required")
	}
	return &Service{
		children:   children,
		milestones: milestones,
		encounters: encounters,
		catalog:    catalogStore,
		labels:     labels,
		tracer:     otel.Tracer("appeal/caregiver"),
	}, nil
}

// Dashboard builds one card per child of the caregiver.
func (s *Service) Dashboard(ctx context.Context, caregiverID domain.CaregiverID, locale i18n.Locale) ([]ChildCard, error) {
	ctx, span := s.tracer.Start(ctx, "caregiver.Dashboard")
	defer span.End()

	labels, err := s.labels.Labels(ctx, locale)
	if err != nil {
		return nil, err
	}
	children, err := s.children.ListByCaregiver(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	defs, err := s.definitionIndex(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	cards := make([]ChildCard, 0, len(children))
	for _, c := range children {
		rows, err := s.milestones.ListByChild(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		ageMonths := age.Months(c.DateOfBirth, now)
		result := dashboard.Evaluate(c.IsAtRisk, ageMonths, dashboardRows(rows, defs), labels)
		cards = append(cards, ChildCard{
			ID:          c.ID,
			Name:        c.DisplayName(),
			AgeLabel:    age.Label(ageMonths, labels),
			Status:      result.Status,
			StatusLabel: result.Label,
		})
	}
	return cards, nil
}

// Timeline assembles the child's activity feed. Encounters and progress
// rows load in parallel.
func (s *Service) Timeline(ctx context.Context, childID domain.ChildID, locale i18n.Locale) ([]timeline.Event, error) {
	ctx, span := s.tracer.Start(ctx, "caregiver.Timeline")
	defer span.End()

	labels, err := s.labels.Labels(ctx, locale)
	if err != nil {
		return nil, err
	}
	c, err := s.children.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	defs, err := s.definitionIndex(ctx)
	if err != nil {
		return nil, err
	}

	var (
		encounters []*encounter.Encounter
		rows       []*milestone.Progress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		encounters, err = s.encounters.ListByChild(gctx, childID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.milestones.ListByChild(gctx, childID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return timeline.Assemble(timeline.Input{
		Now:            requestcontext.Now(ctx),
		DateOfBirth:    c.DateOfBirth,
		EnrollmentDate: c.EnrollmentDate,
		Encounters:     encounters,
		Rows:           rows,
		Definitions:    defs,
		Labels:         labels,
		Locale:         locale,
	}), nil
}

// MilestoneBoard lists every milestone with its derived display state.
func (s *Service) MilestoneBoard(ctx context.Context, childID domain.ChildID, locale i18n.Locale) ([]BoardItem, error) {
	ctx, span := s.tracer.Start(ctx, "caregiver.MilestoneBoard")
	defer span.End()

	labels, err := s.labels.Labels(ctx, locale)
	if err != nil {
		return nil, err
	}
	c, err := s.children.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	rows, defs, err := s.orderedRows(ctx, childID)
	if err != nil {
		return nil, err
	}

	ageMonths := age.Months(c.DateOfBirth, requestcontext.Now(ctx))
	items := make([]BoardItem, 0, len(rows))
	for _, row := range rows {
		def := defs[row.DefinitionID]
		items = append(items, BoardItem{
			ProgressID:       row.ID,
			Title:            def.Title.Resolve(locale),
			Description:      def.Description.Resolve(locale),
			DisplayState:     row.Display(ageMonths, def.ExpectedAgeMonths),
			ExpectedAgeLabel: age.Label(def.ExpectedAgeMonths, labels),
		})
	}
	return items, nil
}

// PendingActions plans the child's to-do list from the ACTIVE subset of
// the board.
func (s *Service) PendingActions(ctx context.Context, childID domain.ChildID, locale i18n.Locale) ([]actions.Action, error) {
	ctx, span := s.tracer.Start(ctx, "caregiver.PendingActions")
	defer span.End()

	labels, err := s.labels.Labels(ctx, locale)
	if err != nil {
		return nil, err
	}
	c, err := s.children.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	rows, defs, err := s.orderedRows(ctx, childID)
	if err != nil {
		return nil, err
	}

	ageMonths := age.Months(c.DateOfBirth, requestcontext.Now(ctx))
	var active []actions.Milestone
	for _, row := range rows {
		def := defs[row.DefinitionID]
		if row.Display(ageMonths, def.ExpectedAgeMonths) != milestone.DisplayActive {
			continue
		}
		active = append(active, actions.Milestone{
			ProgressID:  row.ID,
			Title:       def.Title.Resolve(locale),
			Description: def.Description.Resolve(locale),
		})
	}
	return actions.Plan(c.DisplayName(), active, labels), nil
}

// Overview is the single-child header the app shows above board and feed.
func (s *Service) Overview(ctx context.Context, childID domain.ChildID, locale i18n.Locale) (*Overview, error) {
	labels, err := s.labels.Labels(ctx, locale)
	if err != nil {
		return nil, err
	}
	c, err := s.children.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	rows, err := s.milestones.ListByChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	defs, err := s.definitionIndex(ctx)
	if err != nil {
		return nil, err
	}

	ageMonths := age.Months(c.DateOfBirth, requestcontext.Now(ctx))
	result := dashboard.Evaluate(c.IsAtRisk, ageMonths, dashboardRows(rows, defs), labels)
	return &Overview{
		Child:       c,
		AgeMonths:   ageMonths,
		AgeLabel:    age.Label(ageMonths, labels),
		Status:      result.Status,
		StatusLabel: result.Label,
	}, nil
}

// orderedRows loads the child's progress rows sorted into catalog order,
// plus the definition index.
func (s *Service) orderedRows(ctx context.Context, childID domain.ChildID) ([]*milestone.Progress, map[domain.DefinitionID]catalog.Definition, error) {
	rows, err := s.milestones.ListByChild(ctx, childID)
	if err != nil {
		return nil, nil, err
	}
	defs, err := s.definitionIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return defs[rows[i].DefinitionID].Less(defs[rows[j].DefinitionID])
	})
	return rows, defs, nil
}

func (s *Service) definitionIndex(ctx context.Context) (map[domain.DefinitionID]catalog.Definition, error) {
	defs, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.DefinitionID]catalog.Definition, len(defs))
	for _, def := range defs {
		out[def.ID] = def
	}
	return out, nil
}

func dashboardRows(rows []*milestone.Progress, defs map[domain.DefinitionID]catalog.Definition) []dashboard.Row {
	out := make([]dashboard.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, dashboard.Row{
			Status:            row.Status,
			ExpectedAgeMonths: defs[row.DefinitionID].ExpectedAgeMonths,
		})
	}
	return out
}
