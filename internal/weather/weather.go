// Package weather synthesizes demo forecasts and scores them for hiking.
//
// Reports are generated locally from an injected random source and do not
// reflect real conditions: the same coordinates produce different values on
// every call unless the source is seeded identically.
package weather

import (
	"math"
	"time"

	"backend-hikeroutes/internal/shared/geo"
)

const forecastHours = 12

// Rand is the subset of *math/rand/v2.Rand used by the synthesizer.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type Current struct {
	Temperature         int    `json:"temperature"`
	FeelsLike           int    `json:"feels_like"`
	Description         string `json:"description"`
	Icon                string `json:"icon"`
	Humidity            int    `json:"humidity"`
	WindSpeed           int    `json:"wind_speed"`
	PrecipitationChance int    `json:"precipitation_chance"`
}

type Forecast struct {
	Labels        []string  `json:"labels"`
	Temperatures  []float64 `json:"temperatures"`
	Precipitation []int     `json:"precipitation"`
}

type Report struct {
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

// Synthesize builds a report for the 12 hours starting at at. The point is
// accepted for API symmetry with a real provider and does not affect values.
func Synthesize(at time.Time, _ geo.Point, r Rand) Report {
	base := between(r, 10, 25)

	fc := Forecast{
		Labels:        make([]string, 0, forecastHours),
		Temperatures:  make([]float64, 0, forecastHours),
		Precipitation: make([]int, 0, forecastHours),
	}
	for i := 0; i < forecastHours; i++ {
		fc.Labels = append(fc.Labels, at.Add(time.Duration(i)*time.Hour).Format("15:00"))

		hourOfDay := (at.Hour() + i) % 24
		temp := float64(base) + noonSwing(hourOfDay) + (r.Float64()*4 - 2)
		fc.Temperatures = append(fc.Temperatures, math.Round(temp*10)/10)
	}

	description, icon := describe(base)
	precipitation := between(r, 0, 50)

	cur := Current{
		Temperature:         base,
		FeelsLike:           base - between(r, 0, 3),
		Description:         description,
		Icon:                icon,
		Humidity:            between(r, 40, 80),
		WindSpeed:           between(r, 1, 10),
		PrecipitationChance: precipitation,
	}
	for i := 0; i < forecastHours; i++ {
		fc.Precipitation = append(fc.Precipitation, between(r, 0, precipitation))
	}

	return Report{Current: cur, Forecast: fc}
}

// noonSwing peaks at +5 at 12:00 and decays linearly to 0 at midnight.
func noonSwing(hourOfDay int) float64 {
	return 5 * (1 - math.Abs(float64(hourOfDay-12))/12)
}

func describe(base int) (string, string) {
	switch {
	case base < 15:
		return "Cool, bring a jacket", "cloud"
	case base < 20:
		return "Mild, ideal for hiking", "sun-cloud"
	default:
		return "Warm, bring water", "sun"
	}
}

// between returns a uniform integer in [lo, hi].
func between(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
