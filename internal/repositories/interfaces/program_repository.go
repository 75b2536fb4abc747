package interfaces

import (
	"context"

	"taployalty/internal/models"
)

type ProgramRepository interface {
	// Upsert replaces the merchant's existing program of the same type,
	// keeping the one-active-program-per-type rule.
	Upsert(ctx context.Context, program *models.Program) error
	ListByMerchant(ctx context.Context, merchantID string) ([]*models.Program, error)
	GetByType(ctx context.Context, merchantID string, programType models.ProgramType) (*models.Program, error)
}
