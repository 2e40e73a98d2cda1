// Package dashboard derives the per-child traffic-light status shown on
// the caregiver's home screen.
package dashboard

import (
	"appeal/internal/i18n"
	"appeal/internal/milestone"
)

// Status is the traffic-light colour. Priority is fixed: risk dominates
// pending work, pending work dominates in-review, in-review dominates
// the all-clear state.
type Status string

const (
	StatusRed   Status = "RED"
	StatusAmber Status = "AMBER"
	StatusBlue  Status = "BLUE"
	StatusGreen Status = "GREEN"
)

// Row is the minimal progress view the aggregator reads.
type Row struct {
	Status            milestone.Status
	ExpectedAgeMonths int
}

// Result pairs the colour with its localized caption.
type Result struct {
	Status Status
	Label  string
}

// actionableWindowMonths is the look-ahead buffer: rows becoming due
// within the next month already count as actionable.
const actionableWindowMonths = 1

// Evaluate picks the first matching rule.
func Evaluate(isAtRisk bool, ageMonths int, rows []Row, labels i18n.Labels) Result {
	if isAtRisk {
		return Result{Status: StatusRed, Label: labels.DoctorReview}
	}
	if n := ActionableCount(ageMonths, rows); n > 0 {
		return Result{Status: StatusAmber, Label: i18n.FormatCount(labels.TasksPending, n)}
	}
	for _, row := range rows {
		if row.Status.InReview() {
			return Result{Status: StatusBlue, Label: labels.InReview}
		}
	}
	return Result{Status: StatusGreen, Label: labels.NonePending}
}

// ActionableCount counts rows a caregiver can act on now: PENDING or
// REJECTED, due now or within the look-ahead window.
func ActionableCount(ageMonths int, rows []Row) int {
	n := 0
	for _, row := range rows {
		if row.Status != milestone.StatusPending && row.Status != milestone.StatusRejected {
			continue
		}
		if row.ExpectedAgeMonths <= ageMonths+actionableWindowMonths {
			n++
		}
	}
	return n
}
