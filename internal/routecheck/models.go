package routecheck

import "time"

// Check is a snapshot of the conditions shown for a route, stored once per
// route and time bucket.
type Check struct {
	ID                   string    `json:"id"`
	RouteID              string    `json:"route_id"`
	Bucket               time.Time `json:"bucket"`
	CheckedAt            time.Time `json:"checked_at"`
	WeatherSummary       string    `json:"weather_summary"`
	WeatherTemp          float64   `json:"weather_temp"`
	WeatherPrecipitation float64   `json:"weather_precipitation"`
	ParkingStatus        string    `json:"parking_status"`
	OverallScore         int       `json:"overall_score"`
}

const (
	ParkingAvailable = "available"
	ParkingLimited   = "limited"
	ParkingFull      = "full"
	ParkingUnknown   = "unknown"
)

// StoredParkingStatus maps an estimator level onto the stored vocabulary.
func StoredParkingStatus(level string) string {
	switch level {
	case "available":
		return ParkingAvailable
	case "limited":
		return ParkingLimited
	case "busy", "full":
		return ParkingFull
	default:
		return ParkingUnknown
	}
}
