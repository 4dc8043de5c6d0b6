package routecheck

import (
	"context"
	"fmt"
	"time"

	"backend-hikeroutes/internal/db"

	"github.com/google/uuid"
)

const keyPrefix = "routecheck"

type Service struct {
	db     db.Querier
	claims Claimer
	window time.Duration
}

func NewService(db db.Querier, claims Claimer, window time.Duration) *Service {
	if window <= 0 {
		window = time.Hour
	}
	return &Service{db: db, claims: claims, window: window}
}

// Bucket is the start of the window containing t, in UTC.
func (s *Service) Bucket(t time.Time) time.Time {
	return t.UTC().Truncate(s.window)
}

// Record stores c unless a check for the same route and bucket already
// exists. It reports whether a row was written.
func (s *Service) Record(ctx context.Context, c Check) (bool, error) {
	if c.CheckedAt.IsZero() {
		c.CheckedAt = time.Now()
	}
	c.Bucket = s.Bucket(c.CheckedAt)
	c.ParkingStatus = StoredParkingStatus(c.ParkingStatus)

	key := fmt.Sprintf("%s:%s:%d", keyPrefix, c.RouteID, c.Bucket.Unix())
	claimed, err := s.claims.Claim(ctx, key, s.window)
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	if !claimed {
		return false, nil
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO route_checks (id, route_id, bucket, checked_at, weather_summary, weather_temp,
			weather_precipitation, parking_status, overall_score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (route_id, bucket) DO NOTHING
	`, uuid.NewString(), c.RouteID, c.Bucket, c.CheckedAt, c.WeatherSummary, c.WeatherTemp,
		c.WeatherPrecipitation, c.ParkingStatus, c.OverallScore)
	if err != nil {
		_ = s.claims.Release(ctx, key)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Service) RouteExists(ctx context.Context, routeID string) (bool, error) {
	return db.RouteExists(ctx, s.db, routeID)
}

// History lists the most recent checks of a route.
func (s *Service) History(ctx context.Context, routeID string, limit int) ([]Check, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, route_id, bucket, checked_at, weather_summary, weather_temp,
			weather_precipitation, parking_status, overall_score
		FROM route_checks WHERE route_id=$1
		ORDER BY bucket DESC
		LIMIT $2
	`, routeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := []Check{}
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.ID, &c.RouteID, &c.Bucket, &c.CheckedAt, &c.WeatherSummary, &c.WeatherTemp,
			&c.WeatherPrecipitation, &c.ParkingStatus, &c.OverallScore); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
