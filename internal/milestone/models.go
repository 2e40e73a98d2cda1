// Package milestone tracks a child's progress through the developmental
// catalog: one row per (child, definition) pair, mutated only via the review
// state machine.
package milestone

import (
	"time"

	"appeal/pkg/domain"
	dErrors "appeal/pkg/domain-errors"
)

// Status is the review lifecycle state of a progress row.
//
// PENDING → SUBMITTED → AI_REVIEWED → COMPLETED
// SUBMITTED/AI_REVIEWED → REJECTED → (resubmit) → SUBMITTED
// COMPLETED is terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSubmitted  Status = "SUBMITTED"
	StatusAIReviewed Status = "AI_REVIEWED"
	StatusRejected   Status = "REJECTED"
	StatusCompleted  Status = "COMPLETED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusAIReviewed, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// InReview reports whether the row sits with either review stage.
func (s Status) InReview() bool {
	return s == StatusSubmitted || s == StatusAIReviewed
}

// DisplayState is the UI-facing derived category. It is computed from status
// plus child age and is never persisted.
type DisplayState string

const (
	DisplayWon    DisplayState = "WON"
	DisplayReview DisplayState = "REVIEW"
	DisplayActive DisplayState = "ACTIVE"
	DisplayLocked DisplayState = "LOCKED"
)

// Progress is the per-child record for a single catalog definition.
type Progress struct {
	ID           domain.ProgressID
	ChildID      domain.ChildID
	DefinitionID domain.DefinitionID
	Status       Status
	// EvidenceRef is the opaque reference into the evidence store. A
	// rejected row keeps its last reference so caregivers can see what was
	// turned down; resubmission overwrites it.
	EvidenceRef string
	// CompletionDate is set if and only if Status is COMPLETED.
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPending builds the initial row created when the catalog is synced to a
// child. All rows start PENDING regardless of the child's age at enrollment;
// past-due entries surface through the ACTIVE display-state derivation
// instead of being auto-completed.
func NewPending(childID domain.ChildID, definitionID domain.DefinitionID, now time.Time) *Progress {
	return &Progress{
		ID:           domain.NewProgressID(),
		ChildID:      childID,
		DefinitionID: definitionID,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SubmitEvidence records a new evidence reference and (re-)enters SUBMITTED.
// Allowed from any state, including COMPLETED: a caregiver may replace a
// recording, which reopens review and clears the completion date.
func (p *Progress) SubmitEvidence(evidenceRef string, now time.Time) error {
	if evidenceRef == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "evidence reference is required")
	}
	p.EvidenceRef = evidenceRef
	p.Status = StatusSubmitted
	p.CompletionDate = nil
	p.UpdatedAt = now
	return nil
}

// MarkAIReviewed advances SUBMITTED to AI_REVIEWED.
func (p *Progress) MarkAIReviewed(now time.Time) error {
	if p.Status != StatusSubmitted {
		return dErrors.Newf(dErrors.CodeInvalidState,
			"ai review requires status %s, row is %s", StatusSubmitted, p.Status)
	}
	p.Status = StatusAIReviewed
	p.UpdatedAt = now
	return nil
}

// ReviewByHuman resolves a row that is with review. Approval completes the
// milestone and stamps the completion date; rejection sends it back to the
// caregiver for a retry.
func (p *Progress) ReviewByHuman(approved bool, now time.Time) error {
	if !p.Status.InReview() {
		return dErrors.Newf(dErrors.CodeInvalidState,
			"human review requires status %s or %s, row is %s", StatusSubmitted, StatusAIReviewed, p.Status)
	}
	if approved {
		p.Status = StatusCompleted
		completed := now
		p.CompletionDate = &completed
	} else {
		p.Status = StatusRejected
		p.CompletionDate = nil
	}
	p.UpdatedAt = now
	return nil
}

// Display derives the UI category for a row given the child's age and the
// definition's expected age.
func (p *Progress) Display(ageMonths, expectedAgeMonths int) DisplayState {
	switch {
	case p.Status == StatusCompleted:
		return DisplayWon
	case p.Status.InReview():
		return DisplayReview
	case p.Status == StatusRejected:
		return DisplayActive
	case ageMonths >= expectedAgeMonths:
		return DisplayActive
	default:
		return DisplayLocked
	}
}

// Clone returns a copy safe to mutate before a compare-and-swap write.
func (p *Progress) Clone() *Progress {
	clone := *p
	if p.CompletionDate != nil {
		d := *p.CompletionDate
		clone.CompletionDate = &d
	}
	return &clone
}
