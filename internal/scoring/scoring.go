package scoring

import "fmt"

// Component weights of the overall score. They must sum to 1.
const (
	WeatherWeight    = 0.5
	ParkingWeight    = 0.3
	DifficultyWeight = 0.2
)

// weights in tenths, kept in step with the constants above.
const (
	weatherTenths    = 5
	parkingTenths    = 3
	difficultyTenths = 2
)

const defaultDifficultyScore = 50

var difficultyScores = map[string]int{
	"easy":   90,
	"medium": 70,
	"hard":   50,
}

type Breakdown struct {
	Weather    string `json:"weather"`
	Parking    string `json:"parking"`
	Difficulty string `json:"difficulty"`
}

type Analysis struct {
	OverallScore    int       `json:"overall_score"`
	WeatherScore    int       `json:"weather_score"`
	ParkingScore    int       `json:"parking_score"`
	DifficultyScore int       `json:"difficulty_score"`
	Breakdown       Breakdown `json:"breakdown"`
}

// DifficultyScore favors easier routes; unknown difficulties score 50.
func DifficultyScore(difficulty string) int {
	if s, ok := difficultyScores[difficulty]; ok {
		return s
	}
	return defaultDifficultyScore
}

// Aggregate combines the component scores into the weighted overall score.
func Aggregate(difficulty string, weatherScore, parkingScore int) Analysis {
	d := DifficultyScore(difficulty)
	return Analysis{
		OverallScore:    weightedRound(weatherScore, parkingScore, d),
		WeatherScore:    weatherScore,
		ParkingScore:    parkingScore,
		DifficultyScore: d,
		Breakdown: Breakdown{
			Weather:    component(weatherScore, WeatherWeight),
			Parking:    component(parkingScore, ParkingWeight),
			Difficulty: component(d, DifficultyWeight),
		},
	}
}

// weightedRound computes the sum in integer tenths so ties are exact, then
// rounds half to even.
func weightedRound(w, p, d int) int {
	tenths := weatherTenths*w + parkingTenths*p + difficultyTenths*d
	q, r := tenths/10, tenths%10
	if r < 0 {
		q, r = q-1, r+10
	}
	switch {
	case r > 5, r == 5 && q%2 != 0:
		return q + 1
	default:
		return q
	}
}

func component(score int, weight float64) string {
	return fmt.Sprintf("%d/100 (%.0f%%)", score, weight*100)
}
