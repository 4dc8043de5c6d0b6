package review

import (
	"context"
	"errors"
	"strconv"

	"backend-hikeroutes/internal/db"
	"backend-hikeroutes/internal/validation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrDuplicateReview = errors.New("you have already reviewed this route")
	ErrUserNotFound    = errors.New("user no longer exists")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Create stores a review. The (route, user) uniqueness is enforced by the
// reviews table; a concurrent duplicate surfaces as ErrDuplicateReview.
func (s *Service) Create(ctx context.Context, routeID, userID string, req CreateReviewRequest) (Review, error) {
	if err := validation.Struct(req); err != nil {
		return Review{}, err
	}

	review := Review{
		ID:      uuid.NewString(),
		RouteID: routeID,
		UserID:  userID,
		Rating:  req.Rating,
		Text:    req.Text,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO reviews (id, route_id, user_id, rating, body)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, review.ID, review.RouteID, review.UserID, review.Rating, review.Text)
	if err := row.Scan(&review.CreatedAt); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return Review{}, ErrDuplicateReview
		}
		if constraint, ok := db.ForeignKeyConstraint(err); ok {
			if constraint == db.ReviewsUserFK {
				return Review{}, ErrUserNotFound
			}
			return Review{}, ErrRouteNotFound
		}
		return Review{}, err
	}
	return review, nil
}

func (s *Service) RouteExists(ctx context.Context, routeID string) (bool, error) {
	return db.RouteExists(ctx, s.db, routeID)
}

func (s *Service) Exists(ctx context.Context, routeID, userID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE route_id=$1 AND user_id=$2)
	`, routeID, userID).Scan(&ok)
	return ok, err
}

// ForUser returns the user's review of the route, or ErrNotFound.
func (s *Service) ForUser(ctx context.Context, routeID, userID string) (Review, error) {
	row := s.db.QueryRow(ctx, `
		SELECT rv.id, rv.route_id, rv.user_id, u.username, rv.rating, rv.body, rv.created_at
		FROM reviews rv JOIN users u ON u.id = rv.user_id
		WHERE rv.route_id=$1 AND rv.user_id=$2
	`, routeID, userID)
	var r Review
	if err := row.Scan(&r.ID, &r.RouteID, &r.UserID, &r.Username, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return r, nil
}

// ListByRoute returns reviews newest first. A non-positive limit returns all.
func (s *Service) ListByRoute(ctx context.Context, routeID string, limit int) ([]Review, error) {
	sql := `
		SELECT rv.id, rv.route_id, rv.user_id, u.username, rv.rating, rv.body, rv.created_at
		FROM reviews rv JOIN users u ON u.id = rv.user_id
		WHERE rv.route_id=$1
		ORDER BY rv.created_at DESC`
	if limit > 0 {
		sql += " LIMIT " + strconv.Itoa(limit)
	}

	rows, err := s.db.Query(ctx, sql, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.RouteID, &r.UserID, &r.Username, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Service) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n)
	return n, err
}
