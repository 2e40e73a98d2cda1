// Package timeline assembles the caregiver-facing activity feed: one
// descending chronological list merging enrollment, encounters and
// milestone review activity.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"appeal/internal/age"
	"appeal/internal/catalog"
	"appeal/internal/encounter"
	"appeal/internal/i18n"
	"appeal/internal/milestone"
	"appeal/pkg/domain"
)

// Event is one feed entry. Variants share a Date accessor for ordering;
// everything else is variant-specific.
type Event interface {
	Date() time.Time
	Kind() string
}

// EnrollmentEvent is the single synthetic "joined the programme" entry.
type EnrollmentEvent struct {
	When        time.Time
	Title       string
	Description string
	Icon        string
}

func (e EnrollmentEvent) Date() time.Time { return e.When }
func (e EnrollmentEvent) Kind() string    { return "enrollment" }

// EncounterEvent is one recorded visit.
type EncounterEvent struct {
	When           time.Time
	EncounterType  encounter.Type
	Title          string
	Description    string
	Icon           string
	ScreeningCount int
}

func (e EncounterEvent) Date() time.Time { return e.When }
func (e EncounterEvent) Kind() string    { return "encounter" }

// MilestoneEvent is one non-pending milestone row. Rows still under
// review carry the evaluation date so they float to the top of the feed
// until resolved.
type MilestoneEvent struct {
	When        time.Time
	ProgressID  domain.ProgressID
	Status      milestone.Status
	Title       string
	Description string
	Icon        string
}

func (e MilestoneEvent) Date() time.Time { return e.When }
func (e MilestoneEvent) Kind() string    { return "milestone" }

// Input carries everything the assembler reads. Definitions must cover
// every DefinitionID referenced by Rows.
type Input struct {
	Now            time.Time
	DateOfBirth    time.Time
	EnrollmentDate time.Time
	Encounters     []*encounter.Encounter
	Rows           []*milestone.Progress
	Definitions    map[domain.DefinitionID]catalog.Definition
	Labels         i18n.Labels
	Locale         i18n.Locale
}

// Assemble builds the feed, newest first. Ordering compares calendar
// days, not instants; same-day entries keep insertion order
// (enrollment, then encounters, then milestones in catalog order).
func Assemble(in Input) []Event {
	events := make([]Event, 0, 1+len(in.Encounters)+len(in.Rows))

	events = append(events, EnrollmentEvent{
		When:        in.EnrollmentDate,
		Title:       in.Labels.Enrolled,
		Description: in.Labels.EnrolledDesc,
		Icon:        "flag",
	})

	for _, e := range in.Encounters {
		title := in.Labels.CheckUp
		icon := "stethoscope"
		if e.Type == encounter.TypeHomeVisit {
			title = in.Labels.HomeVisit
			icon = "home"
		}
		events = append(events, EncounterEvent{
			When:           e.Date,
			EncounterType:  e.Type,
			Title:          title,
			Description:    i18n.FormatCount(in.Labels.ChecksPerformed, e.ScreeningCount()),
			Icon:           icon,
			ScreeningCount: e.ScreeningCount(),
		})
	}

	rows := orderByCatalog(in.Rows, in.Definitions)
	for _, row := range rows {
		if row.Status == milestone.StatusPending {
			continue
		}
		def := in.Definitions[row.DefinitionID]
		title := def.Title.Resolve(in.Locale)
		events = append(events, milestoneEvent(row, title, in))
	}

	sort.SliceStable(events, func(i, j int) bool {
		return dayOf(events[i].Date()).After(dayOf(events[j].Date()))
	})
	return events
}

func milestoneEvent(row *milestone.Progress, title string, in Input) MilestoneEvent {
	switch row.Status {
	case milestone.StatusCompleted:
		when := in.Now
		if row.CompletionDate != nil {
			when = *row.CompletionDate
		}
		return MilestoneEvent{
			When:        when,
			ProgressID:  row.ID,
			Status:      row.Status,
			Title:       fmt.Sprintf(in.Labels.Achieved, title),
			Description: i18n.FormatCount(in.Labels.AchievedDesc, age.Months(in.DateOfBirth, when)),
			Icon:        "star",
		}
	case milestone.StatusRejected:
		return MilestoneEvent{
			When:        in.Now,
			ProgressID:  row.ID,
			Status:      row.Status,
			Title:       fmt.Sprintf(in.Labels.NeedsRetry, title),
			Description: in.Labels.NeedsRetryDesc,
			Icon:        "refresh",
		}
	default: // SUBMITTED or AI_REVIEWED
		stage := in.Labels.AIAnalyzing
		if row.Status == milestone.StatusAIReviewed {
			stage = in.Labels.DoctorReviewing
		}
		return MilestoneEvent{
			When:        in.Now,
			ProgressID:  row.ID,
			Status:      row.Status,
			Title:       fmt.Sprintf(in.Labels.InReviewTitle, title),
			Description: fmt.Sprintf(in.Labels.ReviewStatus, stage),
			Icon:        "hourglass",
		}
	}
}

func orderByCatalog(rows []*milestone.Progress, defs map[domain.DefinitionID]catalog.Definition) []*milestone.Progress {
	out := make([]*milestone.Progress, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return defs[out[i].DefinitionID].Less(defs[out[j].DefinitionID])
	})
	return out
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
