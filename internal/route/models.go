package route

import (
	"time"

	"backend-hikeroutes/internal/shared/geo"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	OrderNewest = "newest"
	OrderRating = "rating"
)

type Route struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	LengthKm       float64   `json:"length_km"`
	EstimatedTimeH int       `json:"estimated_time_h"`
	Difficulty     string    `json:"difficulty"`
	Start          geo.Point `json:"start"`
	Finish         geo.Point `json:"finish"`
	AuthorID       string    `json:"author_id"`
	Author         string    `json:"author"`
	AvgRating      float64   `json:"avg_rating"`
	ReviewsCount   int       `json:"reviews_count"`
	FavoritesCount int       `json:"favorites_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RouteRequest is the payload for both create and full update. Coordinates
// are pointers so that a missing one is rejected instead of read as 0.
type RouteRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required"`
	LengthKm       float64  `json:"length_km" validate:"gte=0.1,lte=999.99"`
	EstimatedTimeH int      `json:"estimated_time_h" validate:"min=1,max=48"`
	Difficulty     string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	StartLat       *float64 `json:"start_lat" validate:"required,latitude"`
	StartLon       *float64 `json:"start_lon" validate:"required,longitude"`
	FinishLat      *float64 `json:"finish_lat" validate:"required,latitude"`
	FinishLon      *float64 `json:"finish_lon" validate:"required,longitude"`
}

type Filter struct {
	Difficulty string
	Search     string
	Order      string
	Page       int
}

type Page struct {
	Routes  []Route `json:"routes"`
	Number  int     `json:"page"`
	Pages   int     `json:"pages"`
	Total   int     `json:"total"`
	HasNext bool    `json:"has_next"`
	HasPrev bool    `json:"has_prev"`
}

type Stats struct {
	Routes  int `json:"routes_count"`
	Points  int `json:"points_count"`
	Reviews int `json:"reviews_count"`
}

func validDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
