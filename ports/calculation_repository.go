package ports

import (
	"context"

	"github.com/google/uuid"

	"gopower/models"
)

// CalculationRepository persists power-calculation history. Implementations
// must be safe for concurrent use; the engine itself never touches storage.
type CalculationRepository interface {
	Save(ctx context.Context, calc *models.Calculation) error
	Get(ctx context.Context, id uuid.UUID) (*models.Calculation, error)
	Recent(ctx context.Context, limit int) ([]*models.Calculation, error)
}
