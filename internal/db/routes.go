package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrRouteNotFound = errors.New("route not found")

// Foreign key names from schema.sql that callers map to distinct errors.
const (
	ReviewsRouteFK     = "reviews_route_id_fkey"
	ReviewsUserFK      = "reviews_user_id_fkey"
	FavoritesRouteFK   = "route_favorites_route_id_fkey"
	RoutePointsRouteFK = "route_points_route_id_fkey"
	RoutePointsPointFK = "route_points_point_id_fkey"
)

// RouteExists reports whether a route with the given id is stored.
func RouteExists(ctx context.Context, q Querier, id string) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM routes WHERE id=$1)`, id).Scan(&ok)
	return ok, err
}

// RouteAuthor returns the author of a route, or ErrRouteNotFound.
func RouteAuthor(ctx context.Context, q Querier, id string) (string, error) {
	var authorID string
	if err := q.QueryRow(ctx, `SELECT author_id FROM routes WHERE id=$1`, id).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRouteNotFound
		}
		return "", err
	}
	return authorID, nil
}
