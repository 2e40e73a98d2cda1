// Package catalog holds the fixed developmental milestone definitions. The
// catalog is seeded once and never mutated at runtime; every enrolled child
// gets one progress row per definition.
package catalog

import (
	"appeal/internal/i18n"
	"appeal/pkg/domain"
)

// Definition is an immutable catalog entry.
type Definition struct {
	ID          domain.DefinitionID
	Title       i18n.Text
	Description i18n.Text
	// ExpectedAgeMonths is the age at which the milestone becomes active for
	// a child. Non-negative; zero means active from birth.
	ExpectedAgeMonths int
	// Position preserves seed insertion order and breaks ties between
	// definitions sharing an expected age.
	Position int
}

// Less orders definitions by expected age ascending, ties broken by
// insertion order. This is the canonical catalog order used by the milestone
// board and the pending action planner.
func (d Definition) Less(other Definition) bool {
	if d.ExpectedAgeMonths != other.ExpectedAgeMonths {
		return d.ExpectedAgeMonths < other.ExpectedAgeMonths
	}
	return d.Position < other.Position
}
