package app

import (
	"context"

	"github.com/google/uuid"

	"gopower/domain/power"
	"gopower/internal"
	"gopower/internal/errors"
	"gopower/models"
	"gopower/ports"
)

// CalculationService runs single power calculations and records them as
// history. The repository is optional; without one the service is stateless.
type CalculationService struct {
	repo   ports.CalculationRepository
	logger *internal.Logger
}

// NewCalculationService creates a new calculation service
func NewCalculationService(repo ports.CalculationRepository, logger *internal.Logger) *CalculationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CalculationService{repo: repo, logger: logger}
}

// Calculate solves the unknown field of a request, labels the effect size,
// and persists the outcome when a repository is configured. History
// persistence failures are logged, never surfaced: the computed value is
// the product, the record is bookkeeping.
func (s *CalculationService) Calculate(ctx context.Context, req power.Parameters, unknown power.Field) (*models.Calculation, error) {
	res, warnings, err := power.Compute(req, unknown)
	if err != nil {
		return nil, mapEngineError(err)
	}

	calc := models.NewCalculation(req, res, warnings)
	s.logger.Debug("solved %s for %s: %.4g (achieved power %.3f)",
		unknown, req.Family, res.Value, res.AchievedPower)

	if s.repo != nil {
		if saveErr := s.repo.Save(ctx, calc); saveErr != nil {
			s.logger.Warn("failed to persist calculation %s: %v", calc.ID, saveErr)
		}
	}
	return calc, nil
}

// Lookup fetches one persisted calculation, nil when absent or when no
// repository is configured.
func (s *CalculationService) Lookup(ctx context.Context, id uuid.UUID) (*models.Calculation, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.Get(ctx, id)
}

// History returns the most recent persisted calculations.
func (s *CalculationService) History(ctx context.Context, limit int) ([]*models.Calculation, error) {
	if s.repo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}

// mapEngineError attaches the service error code matching an engine
// failure kind, preserving the original error for diagnostics.
func mapEngineError(err error) error {
	switch {
	case power.IsValidationError(err):
		return errors.Validation(err)
	case power.IsNoSolutionError(err):
		return errors.NoSolution(err)
	case power.IsNumericError(err):
		return errors.Numeric(err)
	default:
		return errors.Wrap(err, "calculation failed")
	}
}
