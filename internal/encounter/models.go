// Package encounter records programme touchpoints with a child: home
// visits, clinic check-ups and teleconsults, with any screening
// questionnaires administered during the visit.
package encounter

import (
	"time"

	"appeal/pkg/domain"
)

// Type classifies how the encounter happened.
type Type string

const (
	TypeHomeVisit   Type = "HOME_VISIT"
	TypeClinic      Type = "CLINIC"
	TypeTeleconsult Type = "TELECONSULT"
)

func (t Type) Valid() bool {
	switch t {
	case TypeHomeVisit, TypeClinic, TypeTeleconsult:
		return true
	}
	return false
}

// ScreeningResult is one answered question from a screening tool
// administered during the encounter.
type ScreeningResult struct {
	Category   string
	QuestionID string
	Response   string
	// Flagged marks responses the screening tool scored as concerning.
	Flagged bool
}

// Encounter is a single recorded touchpoint.
type Encounter struct {
	ID         domain.EncounterID
	ChildID    domain.ChildID
	Type       Type
	Date       time.Time
	Notes      string
	Screenings []ScreeningResult
	CreatedAt  time.Time
}

// ScreeningCount is the number of checks performed during the visit.
func (e *Encounter) ScreeningCount() int {
	return len(e.Screenings)
}

// Clone returns a deep copy safe to mutate.
func (e *Encounter) Clone() *Encounter {
	out := *e
	if e.Screenings != nil {
		out.Screenings = make([]ScreeningResult, len(e.Screenings))
		copy(out.Screenings, e.Screenings)
	}
	return &out
}
