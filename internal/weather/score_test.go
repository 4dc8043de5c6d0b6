package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityScore(t *testing.T) {
	cases := []struct {
		name string
		cur  Current
		want int
	}{
		{"perfect clamps to 100", Current{Temperature: 20, WindSpeed: 2}, 100},
		{"rain only", Current{Temperature: 10, WindSpeed: 1, PrecipitationChance: 30}, 70},
		{"moderate wind", Current{Temperature: 12, WindSpeed: 6}, 90},
		{"wind at 8 is moderate", Current{Temperature: 12, WindSpeed: 8}, 90},
		{"strong wind", Current{Temperature: 12, WindSpeed: 9}, 80},
		{"comfortable bonus", Current{Temperature: 15, WindSpeed: 9, PrecipitationChance: 40}, 50},
		{"upper comfort bound", Current{Temperature: 25, PrecipitationChance: 50}, 60},
		{"cold penalty", Current{Temperature: 4, PrecipitationChance: 10}, 70},
		{"hot penalty", Current{Temperature: 31, WindSpeed: 10, PrecipitationChance: 50}, 10},
		{"neutral band", Current{Temperature: 28, PrecipitationChance: 5}, 95},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, QualityScore(tc.cur))
		})
	}
}

func TestQualityScoreAlwaysInRange(t *testing.T) {
	for temp := -40; temp <= 50; temp++ {
		for wind := 0; wind <= 30; wind++ {
			for precip := 0; precip <= 150; precip += 5 {
				s := QualityScore(Current{Temperature: temp, WindSpeed: wind, PrecipitationChance: precip})
				if s < 0 || s > 100 {
					t.Fatalf("score %d out of range for temp=%d wind=%d precip=%d", s, temp, wind, precip)
				}
			}
		}
	}
}
