// Package child is the child/caregiver registry: enrollment records and the
// externally set clinical risk flag.
package child

import (
	"time"

	"appeal/pkg/domain"
	domainerrors "appeal/pkg/domain-errors"
)

// Relationship of a caregiver to their children.
type Relationship string

const (
	RelationshipMother   Relationship = "MOTHER"
	RelationshipFather   Relationship = "FATHER"
	RelationshipGuardian Relationship = "GUARDIAN"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipMother, RelationshipFather, RelationshipGuardian:
		return true
	}
	return false
}

// Sex as recorded at enrollment.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// DateOfBirthLayout is the wire format for enrollment dates.
const DateOfBirthLayout = "2006-01-02"

// ParseDateOfBirth parses a calendar date in UTC.
func ParseDateOfBirth(raw string) (time.Time, error) {
	dob, err := time.ParseInLocation(DateOfBirthLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, domainerrors.Newf(domainerrors.CodeInvalidInput, "invalid date of birth %q", raw)
	}
	return dob, nil
}

// Caregiver is the enrolled adult responsible for one or more children.
type Caregiver struct {
	ID           domain.CaregiverID
	FirstName    string
	LastName     string
	PhoneNumber  string
	Relationship Relationship
	// LanguagePreference is a raw tag ("hi", "kn-IN"); the transport layer
	// resolves it to a supported locale.
	LanguagePreference string
	CreatedAt          time.Time
}

// Child is an enrolled child.
type Child struct {
	ID          domain.ChildID
	CaregiverID domain.CaregiverID
	// Code is the human-quotable unique child identifier printed on the
	// health card (e.g. "CID-ZARA-009").
	Code        string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Sex         Sex

	// Birth metrics, optional.
	BirthWeightKg       *float64
	BirthHeightCm       *float64
	GestationalAgeWeeks *int

	// IsAtRisk is set by clinical judgment, never derived here. It drives
	// the red dashboard status.
	IsAtRisk       bool
	EnrollmentDate time.Time
	UpdatedAt      time.Time
}

// DisplayName is the caregiver-facing name used in projections.
func (c *Child) DisplayName() string {
	return c.FirstName
}
