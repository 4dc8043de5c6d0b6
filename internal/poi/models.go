package poi

import (
	"time"

	"backend-hikeroutes/internal/shared/geo"
)

type Point struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    geo.Point `json:"location"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePointRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description"`
	Lat         *float64 `json:"lat" validate:"required,latitude"`
	Lon         *float64 `json:"lon" validate:"required,longitude"`
	Type        string   `json:"type" validate:"omitempty,oneof=viewpoint waterfall spring camping monument other"`
}

// NearbyPoint is a point with its distance from the search origin.
type NearbyPoint struct {
	Point
	DistanceKm float64 `json:"distance_km"`
}
