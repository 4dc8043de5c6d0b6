// Package parking estimates trailhead parking availability from the time of
// day. Like the weather package it is a local stand-in for a real provider.
package parking

import (
	"time"

	"backend-hikeroutes/internal/shared/geo"
)

const DefaultOverrideProbability = 0.2

type Level string

const (
	Available Level = "available"
	Limited   Level = "limited"
	Busy      Level = "busy"
)

var levels = []Level{Available, Limited, Busy}

// Label is the human readable form of the level.
func (l Level) Label() string {
	switch l {
	case Available:
		return "Available"
	case Limited:
		return "Limited"
	case Busy:
		return "Busy"
	default:
		return "Unknown"
	}
}

// Rand is the subset of *math/rand/v2.Rand used by the estimator.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type Status struct {
	Status      Level  `json:"status"`
	StatusText  string `json:"status_text"`
	Description string `json:"description"`
	Score       int    `json:"score"`
	LastChecked string `json:"last_checked"`
}

// Estimator applies the time-of-day table and, with OverrideProbability,
// replaces the result with a random level and score.
type Estimator struct {
	OverrideProbability float64
}

func NewEstimator() Estimator {
	return Estimator{OverrideProbability: DefaultOverrideProbability}
}

func (e Estimator) Estimate(at time.Time, _ geo.Point, r Rand) Status {
	level, description, score := byHour(at.Hour())

	if e.OverrideProbability > 0 && r.Float64() < e.OverrideProbability {
		level = levels[r.IntN(len(levels))]
		score = 30 + r.IntN(66)
	}

	return Status{
		Status:      level,
		StatusText:  level.Label(),
		Description: description,
		Score:       score,
		LastChecked: at.Format("15:04"),
	}
}

func byHour(hour int) (Level, string, int) {
	switch {
	case hour >= 7 && hour <= 9:
		return Busy, "Morning rush, few spaces left", 40
	case hour > 9 && hour <= 17:
		return Available, "Plenty of free spaces", 80
	case hour > 17 && hour <= 20:
		return Limited, "Evening arrivals, some spaces left", 60
	default:
		return Available, "Quiet hours, many free spaces", 90
	}
}
