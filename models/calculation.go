package models

import (
	"time"

	"github.com/google/uuid"

	"gopower/domain/power"
)

// Calculation is one persisted power-analysis request and its outcome,
// kept as history so sessions can be revisited and exported.
type Calculation struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Family        power.Family     `json:"family" db:"family"`
	Unknown       power.Field      `json:"unknown" db:"unknown_field"`
	Request       power.Parameters `json:"request" db:"-"`
	Value         float64          `json:"value" db:"value"`
	AchievedPower float64          `json:"achieved_power" db:"achieved_power"`
	EffectLabel   string           `json:"effect_label" db:"effect_label"`
	Warnings      []string         `json:"warnings,omitempty" db:"-"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// NewCalculation builds a history record from a solved request.
func NewCalculation(req power.Parameters, res power.Result, warnings []power.WarningCode) *Calculation {
	ws := make([]string, 0, len(warnings))
	for _, w := range warnings {
		ws = append(ws, string(w))
	}
	return &Calculation{
		ID:            uuid.New(),
		Family:        req.Family,
		Unknown:       res.Field,
		Request:       req,
		Value:         res.Value,
		AchievedPower: res.AchievedPower,
		EffectLabel:   effectLabel(req, res),
		Warnings:      ws,
		CreatedAt:     time.Now().UTC(),
	}
}

// effectLabel classifies whichever effect size the record ends up with:
// the solved one when effect size was the unknown, the input otherwise.
func effectLabel(req power.Parameters, res power.Result) string {
	effect := res.Value
	if res.Field != power.FieldEffectSize {
		if req.EffectSize == nil {
			return ""
		}
		effect = *req.EffectSize
	}
	return power.Classify(req.Family, effect)
}
