package weather

// QualityScore rates current conditions for hiking on a 0-100 scale.
func QualityScore(c Current) int {
	score := 100

	score -= c.PrecipitationChance

	switch {
	case c.WindSpeed > 8:
		score -= 20
	case c.WindSpeed > 5:
		score -= 10
	}

	switch {
	case c.Temperature >= 15 && c.Temperature <= 25:
		score += 10
	case c.Temperature < 5 || c.Temperature > 30:
		score -= 20
	}

	return max(0, min(100, score))
}
