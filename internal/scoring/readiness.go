package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

// Label is the qualitative band of a readiness total.
type Label string

const (
	LabelWeak      Label = "Weak"
	LabelAverage   Label = "Average"
	LabelExcellent Label = "Excellent"
)

const (
	aptitudeWeight  = 0.30
	codingWeight    = 0.40
	softSkillWeight = 0.30

	averageFloor   = 35
	excellentFloor = 70
)

// ReadinessResult is recomputed on every read from the three subject scores.
type ReadinessResult struct {
	Total int   `json:"total"`
	Label Label `json:"label"`
}

// Readiness blends the subject percentages 30/40/30 and labels the result.
// Inputs are clamped to [0,100] before weighting.
func Readiness(aptitude, coding, softSkill float64) ReadinessResult {
	blend := decimal.NewFromFloat(aptitudeWeight).Mul(decimal.NewFromFloat(clampPercent(aptitude))).
		Add(decimal.NewFromFloat(codingWeight).Mul(decimal.NewFromFloat(clampPercent(coding)))).
		Add(decimal.NewFromFloat(softSkillWeight).Mul(decimal.NewFromFloat(clampPercent(softSkill))))

	total := int(blend.Round(0).IntPart())
	return ReadinessResult{Total: total, Label: LabelFor(total)}
}

// LabelFor maps a readiness total to its band. Lower bounds are inclusive.
func LabelFor(total int) Label {
	switch {
	case total < averageFloor:
		return LabelWeak
	case total < excellentFloor:
		return LabelAverage
	default:
		return LabelExcellent
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
