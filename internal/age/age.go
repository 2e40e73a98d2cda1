// Package age converts dates of birth into the programme's age-in-months
// figure and formats caregiver-facing age labels.
package age

import (
	"fmt"
	"time"

	"appeal/internal/i18n"
)

// Months returns whole 30-day months between dateOfBirth and at.
//
// The 30-day month is deliberate: every projection in the system (display
// states, dashboard actionability, age labels) is calibrated against this
// approximation, not calendar-month arithmetic. Changing it would shift which
// milestones read as due.
//
// A future dateOfBirth yields a non-positive result; callers treat that the
// same as age zero.
func Months(dateOfBirth, at time.Time) int {
	days := int(at.Sub(dateOfBirth) / (24 * time.Hour))
	return days / 30
}

// Label renders ageMonths against a label table.
//
// Under 24 months the age reads in months ("23 months"); from 24 months it
// reads in years, with a mixed form when the remainder is non-zero
// ("2 yrs 6 mo", "2 years").
func Label(ageMonths int, labels i18n.Labels) string {
	if ageMonths < 24 {
		return fmt.Sprintf(labels.Months, ageMonths)
	}
	years := ageMonths / 12
	rem := ageMonths % 12
	if rem > 0 {
		return fmt.Sprintf(labels.YearsMonths, years, rem)
	}
	return fmt.Sprintf(labels.Years, years)
}
