// Package audit captures an append-only trail of clinically significant
// actions: registrations, encounters, and every milestone review transition.
package audit

import (
	"context"
	"time"

	"appeal/pkg/domain"
)

// Action names the recorded operation.
type Action string

const (
	ActionChildRegistered   Action = "child_registered"
	ActionCatalogSynced     Action = "catalog_synced"
	ActionEvidenceSubmitted Action = "evidence_submitted"
	ActionAIReviewed        Action = "ai_reviewed"
	ActionReviewApproved    Action = "review_approved"
	ActionReviewRejected    Action = "review_rejected"
	ActionEncounterRecorded Action = "encounter_recorded"
	ActionRiskFlagChanged   Action = "risk_flag_changed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time
	Action     Action
	ChildID    domain.ChildID
	ProgressID domain.ProgressID
	// Actor is who performed the action: a caregiver id for submissions, a
	// reviewer identifier for reviews, "system" for automated steps.
	Actor string
	// RequestID is the correlation id from the HTTP request context.
	RequestID string
	Detail    string
}

// Store persists events. Append-only; there is no delete.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByChild(ctx context.Context, childID domain.ChildID) ([]Event, error)
}

// Sink receives a copy of every event without serving reads. Used for
// side-channel delivery such as the Kafka feed.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
