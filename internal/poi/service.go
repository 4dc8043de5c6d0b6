package poi

import (
	"context"
	"errors"
	"sort"

	"backend-hikeroutes/internal/db"
	"backend-hikeroutes/internal/shared/geo"
	"backend-hikeroutes/internal/validation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound      = errors.New("point of interest not found")
	ErrRouteNotFound = errors.New("route not found")
	ErrForbidden     = errors.New("only the route author can change its points")
)

const defaultType = "other"

// kmPerDegreeLat is the length of one degree of latitude.
const kmPerDegreeLat = 111.32

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, req CreatePointRequest) (Point, error) {
	if err := validation.Struct(req); err != nil {
		return Point{}, err
	}
	if req.Type == "" {
		req.Type = defaultType
	}

	p := Point{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Location:    geo.Point{Lat: *req.Lat, Lon: *req.Lon},
		Type:        req.Type,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO points_of_interest (id, name, description, lat, lon, type)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, p.ID, p.Name, p.Description, p.Location.Lat, p.Location.Lon, p.Type)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Point{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (Point, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, lat, lon, type, created_at
		FROM points_of_interest WHERE id=$1
	`, id)
	var p Point
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Location.Lat, &p.Location.Lon, &p.Type, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Point{}, ErrNotFound
		}
		return Point{}, err
	}
	return p, nil
}

func (s *Service) ListByRoute(ctx context.Context, routeID string) ([]Point, error) {
	return s.query(ctx, `
		SELECT p.id, p.name, p.description, p.lat, p.lon, p.type, p.created_at
		FROM points_of_interest p JOIN route_points rp ON rp.point_id = p.id
		WHERE rp.route_id=$1
		ORDER BY p.name
	`, routeID)
}

// Nearby returns points within radiusKm of origin, closest first. The latitude
// band in SQL only narrows candidates; the haversine distance decides.
func (s *Service) Nearby(ctx context.Context, origin geo.Point, radiusKm float64) ([]NearbyPoint, error) {
	dLat := radiusKm / kmPerDegreeLat
	points, err := s.query(ctx, `
		SELECT id, name, description, lat, lon, type, created_at
		FROM points_of_interest
		WHERE lat BETWEEN $1 AND $2
	`, origin.Lat-dLat, origin.Lat+dLat)
	if err != nil {
		return nil, err
	}

	out := []NearbyPoint{}
	for _, p := range points {
		d := geo.Distance(origin, p.Location)
		if d <= radiusKm {
			out = append(out, NearbyPoint{Point: p, DistanceKm: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

func (s *Service) query(ctx context.Context, sql string, args ...any) ([]Point, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []Point{}
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Location.Lat, &p.Location.Lon, &p.Type, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *Service) RouteExists(ctx context.Context, routeID string) (bool, error) {
	return db.RouteExists(ctx, s.db, routeID)
}

func (s *Service) authorize(ctx context.Context, routeID, userID string) error {
	authorID, err := db.RouteAuthor(ctx, s.db, routeID)
	if err != nil {
		if errors.Is(err, db.ErrRouteNotFound) {
			return ErrRouteNotFound
		}
		return err
	}
	if authorID != userID {
		return ErrForbidden
	}
	return nil
}

// Attach links a point to a route owned by userID. Attaching twice is a no-op.
func (s *Service) Attach(ctx context.Context, pointID, routeID, userID string) error {
	if err := s.authorize(ctx, routeID, userID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO route_points (route_id, point_id)
		VALUES ($1,$2)
		ON CONFLICT (route_id, point_id) DO NOTHING
	`, routeID, pointID)
	if fk, ok := db.ForeignKeyConstraint(err); ok {
		if fk == db.RoutePointsPointFK {
			return ErrNotFound
		}
		return ErrRouteNotFound
	}
	return err
}

// Detach unlinks a point from a route owned by userID.
func (s *Service) Detach(ctx context.Context, pointID, routeID, userID string) error {
	if err := s.authorize(ctx, routeID, userID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM route_points WHERE route_id=$1 AND point_id=$2`, routeID, pointID)
	return err
}

func (s *Service) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM points_of_interest`).Scan(&n)
	return n, err
}
