package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gopower/domain/power"
	"gopower/internal/errors"
	"gopower/models"
	"gopower/ports"
)

// CalculationRepositoryImpl implements CalculationRepository for PostgreSQL
type CalculationRepositoryImpl struct {
	db *sqlx.DB
}

// NewCalculationRepository creates a new PostgreSQL calculation repository
func NewCalculationRepository(db *sqlx.DB) ports.CalculationRepository {
	return &CalculationRepositoryImpl{db: db}
}

// Save stores a calculation history record
func (r *CalculationRepositoryImpl) Save(ctx context.Context, calc *models.Calculation) error {
	requestJSON, err := json.Marshal(calc.Request)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO calculations (
			id, family, unknown_field, request, value,
			achieved_power, effect_label, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			request = EXCLUDED.request,
			value = EXCLUDED.value,
			achieved_power = EXCLUDED.achieved_power,
			effect_label = EXCLUDED.effect_label,
			warnings = EXCLUDED.warnings`,
		calc.ID, calc.Family, calc.Unknown, requestJSON, calc.Value,
		calc.AchievedPower, calc.EffectLabel, pq.Array(calc.Warnings), calc.CreatedAt)
	return errors.Storage(err)
}

// Get retrieves one calculation by id
func (r *CalculationRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Calculation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, family, unknown_field, request, value,
		       achieved_power, effect_label, warnings, created_at
		FROM calculations WHERE id = $1`, id)

	calc, err := scanCalculation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return calc, errors.Storage(err)
}

// Recent returns the most recent calculations, newest first
func (r *CalculationRepositoryImpl) Recent(ctx context.Context, limit int) ([]*models.Calculation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, family, unknown_field, request, value,
		       achieved_power, effect_label, warnings, created_at
		FROM calculations ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Storage(err)
	}
	defer rows.Close()

	var results []*models.Calculation
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, calc)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalculation(row rowScanner) (*models.Calculation, error) {
	var calc models.Calculation
	var requestJSON []byte
	var warnings pq.StringArray

	err := row.Scan(&calc.ID, &calc.Family, &calc.Unknown, &requestJSON,
		&calc.Value, &calc.AchievedPower, &calc.EffectLabel, &warnings, &calc.CreatedAt)
	if err != nil {
		return nil, err
	}

	var req power.Parameters
	if err := json.Unmarshal(requestJSON, &req); err != nil {
		return nil, err
	}
	calc.Request = req
	calc.Warnings = warnings
	return &calc, nil
}
