package child

import (
	"context"

	"appeal/pkg/domain"
)

// Store persists caregivers and children.
type Store interface {
	CreateCaregiver(ctx context.Context, caregiver *Caregiver) error
	GetCaregiver(ctx context.Context, id domain.CaregiverID) (*Caregiver, error)

	CreateChild(ctx context.Context, child *Child) error
	GetChild(ctx context.Context, id domain.ChildID) (*Child, error)
	ListChildrenByCaregiver(ctx context.Context, caregiverID domain.CaregiverID) ([]*Child, error)
	SetAtRisk(ctx context.Context, id domain.ChildID, atRisk bool) error
}
