package route

import (
	"context"
	"errors"
	"strings"

	"backend-hikeroutes/internal/db"
	"backend-hikeroutes/internal/validation"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound  = errors.New("route not found")
	ErrForbidden = errors.New("only the author can modify this route")
)

const (
	recommendationLimit = 5
)

const routeColumns = `r.id, r.title, r.description, r.length_km, r.estimated_time_h, r.difficulty,
	r.start_lat, r.start_lon, r.finish_lat, r.finish_lon, r.author_id, u.username,
	COALESCE((SELECT AVG(rating) FROM reviews WHERE route_id = r.id), 0)::float8 AS avg_rating,
	(SELECT COUNT(*) FROM reviews WHERE route_id = r.id) AS reviews_count,
	(SELECT COUNT(*) FROM route_favorites WHERE route_id = r.id) AS favorites_count,
	r.created_at, r.updated_at`

const routeSource = `routes r JOIN users u ON u.id = r.author_id`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Counter is satisfied by the stores that contribute to Stats.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(row scanner) (Route, error) {
	var r Route
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.LengthKm, &r.EstimatedTimeH, &r.Difficulty,
		&r.Start.Lat, &r.Start.Lon, &r.Finish.Lat, &r.Finish.Lon, &r.AuthorID, &r.Author,
		&r.AvgRating, &r.ReviewsCount, &r.FavoritesCount, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (s *Service) Get(ctx context.Context, id string) (Route, error) {
	r, err := scanRoute(s.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM `+routeSource+` WHERE r.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Route{}, ErrNotFound
		}
		return Route{}, err
	}
	return r, nil
}

func applyFilter(b sq.SelectBuilder, f Filter) sq.SelectBuilder {
	if validDifficulty(f.Difficulty) {
		b = b.Where(sq.Eq{"r.difficulty": f.Difficulty})
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		b = b.Where(sq.Or{
			sq.ILike{"r.title": pattern},
			sq.ILike{"r.description": pattern},
		})
	}
	return b
}

// List returns one page of routes. Out-of-range page numbers are clamped
// rather than rejected.
func (s *Service) List(ctx context.Context, f Filter) (Page, error) {
	countSQL, countArgs, err := applyFilter(psql.Select("COUNT(*)").From("routes r"), f).ToSql()
	if err != nil {
		return Page{}, err
	}
	var total int
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return Page{}, err
	}

	number, pages := resolvePage(total, f.Page)
	page := Page{
		Routes:  []Route{},
		Number:  number,
		Pages:   pages,
		Total:   total,
		HasNext: number < pages,
		HasPrev: number > 1,
	}
	if total == 0 {
		return page, nil
	}

	q := applyFilter(psql.Select(routeColumns).From(routeSource), f)
	if f.Order == OrderRating {
		q = q.OrderBy("avg_rating DESC", "r.created_at DESC")
	} else {
		q = q.OrderBy("r.created_at DESC")
	}
	listSQL, listArgs, err := q.Limit(PageSize).Offset(uint64((number - 1) * PageSize)).ToSql()
	if err != nil {
		return Page{}, err
	}

	page.Routes, err = s.queryRoutes(ctx, listSQL, listArgs...)
	if err != nil {
		return Page{}, err
	}
	return page, nil
}

func (s *Service) queryRoutes(ctx context.Context, sql string, args ...any) ([]Route, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := []Route{}
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (s *Service) Create(ctx context.Context, authorID string, req RouteRequest) (Route, error) {
	if err := validation.Struct(req); err != nil {
		return Route{}, err
	}
	if req.Difficulty == "" {
		req.Difficulty = DifficultyMedium
	}

	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO routes (id, title, description, length_km, estimated_time_h, difficulty,
			start_lat, start_lon, finish_lat, finish_lon, author_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, id, req.Title, req.Description, req.LengthKm, req.EstimatedTimeH, req.Difficulty,
		*req.StartLat, *req.StartLon, *req.FinishLat, *req.FinishLon, authorID)
	if err != nil {
		return Route{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) authorize(ctx context.Context, id, userID string) error {
	authorID, err := db.RouteAuthor(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, db.ErrRouteNotFound) {
			return ErrNotFound
		}
		return err
	}
	if authorID != userID {
		return ErrForbidden
	}
	return nil
}

// Update replaces every editable field of a route owned by userID.
func (s *Service) Update(ctx context.Context, id, userID string, req RouteRequest) (Route, error) {
	if err := validation.Struct(req); err != nil {
		return Route{}, err
	}
	if err := s.authorize(ctx, id, userID); err != nil {
		return Route{}, err
	}
	if req.Difficulty == "" {
		req.Difficulty = DifficultyMedium
	}

	_, err := s.db.Exec(ctx, `
		UPDATE routes
		SET title=$2, description=$3, length_km=$4, estimated_time_h=$5, difficulty=$6,
			start_lat=$7, start_lon=$8, finish_lat=$9, finish_lon=$10, updated_at=now()
		WHERE id=$1
	`, id, req.Title, req.Description, req.LengthKm, req.EstimatedTimeH, req.Difficulty,
		*req.StartLat, *req.StartLon, *req.FinishLat, *req.FinishLon)
	if err != nil {
		return Route{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes a route owned by userID; reviews, checks, favorites and
// point associations go with it.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.authorize(ctx, id, userID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	return err
}

// ToggleFavorite flips the user's favorite mark in one statement and reports
// whether the route is now favorited. The insert branch upserts so that a
// concurrent toggle which inserted the same row first still reports true.
func (s *Service) ToggleFavorite(ctx context.Context, routeID, userID string) (bool, error) {
	var favorited bool
	err := s.db.QueryRow(ctx, `
		WITH removed AS (
			DELETE FROM route_favorites WHERE route_id=$1 AND user_id=$2 RETURNING 1
		), added AS (
			INSERT INTO route_favorites (route_id, user_id)
			SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM removed)
			ON CONFLICT (route_id, user_id) DO UPDATE SET created_at = route_favorites.created_at
			RETURNING 1
		)
		SELECT EXISTS (SELECT 1 FROM added)
	`, routeID, userID).Scan(&favorited)
	if err != nil {
		if fk, ok := db.ForeignKeyConstraint(err); ok && fk == db.FavoritesRouteFK {
			return false, ErrNotFound
		}
		return false, err
	}
	return favorited, nil
}

func (s *Service) IsFavorited(ctx context.Context, routeID, userID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM route_favorites WHERE route_id=$1 AND user_id=$2)
	`, routeID, userID).Scan(&ok)
	return ok, err
}

// Recommendations returns the best rated routes that have at least one review.
func (s *Service) Recommendations(ctx context.Context) ([]Route, error) {
	sql, args, err := psql.Select(routeColumns).From(routeSource).
		Where("EXISTS (SELECT 1 FROM reviews WHERE route_id = r.id)").
		OrderBy("avg_rating DESC", "r.created_at DESC").
		Limit(recommendationLimit).
		ToSql()
	if err != nil {
		return nil, err
	}
	return s.queryRoutes(ctx, sql, args...)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM routes`).Scan(&n)
	return n, err
}

// Stats counts the catalog contents.
func (s *Service) Stats(ctx context.Context, points, reviews Counter) (Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.Routes, err = s.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Points, err = points.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Reviews, err = reviews.Count(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}
