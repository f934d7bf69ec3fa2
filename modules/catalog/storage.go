package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Storage handles fee and class persistence.
type Storage interface {
	CreateFee(ctx context.Context, fee FeeDefinition) error
	FeeByID(ctx context.Context, id uuid.UUID) (FeeDefinition, error)
	UpdateFee(ctx context.Context, fee FeeDefinition) error
	ListFees(ctx context.Context) ([]FeeDefinition, error)

	CreateClass(ctx context.Context, class ClassOffering) error
	ClassByID(ctx context.Context, id uuid.UUID) (ClassOffering, error)
}
