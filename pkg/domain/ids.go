// Package domain holds typed identifiers shared across the module. Distinct
// ID types keep a progress id from ever being passed where a child id is
// expected; the compiler enforces it.
package domain

import (
	"github.com/google/uuid"

	dErrors "appeal/pkg/domain-errors"
)

type (
	// CaregiverID identifies a caregiver account.
	CaregiverID uuid.UUID
	// ChildID identifies an enrolled child.
	ChildID uuid.UUID
	// DefinitionID identifies a milestone catalog definition.
	DefinitionID uuid.UUID
	// ProgressID identifies a per-child milestone progress row.
	ProgressID uuid.UUID
	// EncounterID identifies a clinical encounter.
	EncounterID uuid.UUID
)

func (id CaregiverID) String() string  { return uuid.UUID(id).String() }
func (id ChildID) String() string      { return uuid.UUID(id).String() }
func (id DefinitionID) String() string { return uuid.UUID(id).String() }
func (id ProgressID) String() string   { return uuid.UUID(id).String() }
func (id EncounterID) String() string  { return uuid.UUID(id).String() }

func (id CaregiverID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ChildID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id DefinitionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ProgressID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id EncounterID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// NewCaregiverID returns a fresh random caregiver id.
func NewCaregiverID() CaregiverID { return CaregiverID(uuid.New()) }

// NewChildID returns a fresh random child id.
func NewChildID() ChildID { return ChildID(uuid.New()) }

// NewDefinitionID returns a fresh random definition id.
func NewDefinitionID() DefinitionID { return DefinitionID(uuid.New()) }

// NewProgressID returns a fresh random progress id.
func NewProgressID() ProgressID { return ProgressID(uuid.New()) }

// NewEncounterID returns a fresh random encounter id.
func NewEncounterID() EncounterID { return EncounterID(uuid.New()) }

// parseUUID enforces the shared invariant: ids must be valid, non-empty,
// non-nil UUIDs. Parsing happens at trust boundaries (handlers), so services
// only ever see validated ids.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "%s id must not be empty", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "%s id is not a valid uuid", kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeBadRequest, "%s id must not be the nil uuid", kind)
	}
	return u, nil
}

// ParseCaregiverID validates and returns a CaregiverID.
func ParseCaregiverID(s string) (CaregiverID, error) {
	u, err := parseUUID(s, "caregiver")
	return CaregiverID(u), err
}

// ParseChildID validates and returns a ChildID.
func ParseChildID(s string) (ChildID, error) {
	u, err := parseUUID(s, "child")
	return ChildID(u), err
}

// ParseDefinitionID validates and returns a DefinitionID.
func ParseDefinitionID(s string) (DefinitionID, error) {
	u, err := parseUUID(s, "definition")
	return DefinitionID(u), err
}

// ParseProgressID validates and returns a ProgressID.
func ParseProgressID(s string) (ProgressID, error) {
	u, err := parseUUID(s, "progress")
	return ProgressID(u), err
}

// ParseEncounterID validates and returns an EncounterID.
func ParseEncounterID(s string) (EncounterID, error) {
	u, err := parseUUID(s, "encounter")
	return EncounterID(u), err
}
