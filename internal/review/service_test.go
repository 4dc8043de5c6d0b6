package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-hikeroutes/internal/validation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
)

var reviewColumns = []string{"id", "route_id", "user_id", "username", "rating", "body", "created_at"}

var errDB = errors.New("db error")

func TestCreateReview(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), "route-1", "user-1", 4, "Lovely views").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	svc := NewService(mock)
	review, err := svc.Create(context.Background(), "route-1", "user-1", CreateReviewRequest{Rating: 4, Text: "Lovely views"})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.ID == "" || review.Rating != 4 || !review.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected review: %+v", review)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc := NewService(nil)
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), "route-1", "user-1", CreateReviewRequest{Rating: rating})
		var fields validation.Errors
		if !errors.As(err, &fields) || fields["rating"] == "" {
			t.Fatalf("rating %d: expected rating field error, got %v", rating, err)
		}
	}
}

func TestCreateDuplicateReviewKeepsOriginal(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	original := time.Now().Add(-time.Hour)
	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), "route-1", "user-1", 5, "first").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(original))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(pgxmock.AnyArg(), "route-1", "user-1", 1, "second").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "reviews_route_id_user_id_key"})
	mock.ExpectQuery(`SELECT rv.id, rv.route_id, rv.user_id, u.username, rv.rating, rv.body, rv.created_at`).
		WithArgs("route-1", "user-1").
		WillReturnRows(pgxmock.NewRows(reviewColumns).AddRow("review-1", "route-1", "user-1", "hiker", 5, "first", original))

	svc := NewService(mock)
	if _, err := svc.Create(context.Background(), "route-1", "user-1", CreateReviewRequest{Rating: 5, Text: "first"}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err = svc.Create(context.Background(), "route-1", "user-1", CreateReviewRequest{Rating: 1, Text: "second"})
	if !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("expected duplicate review error, got %v", err)
	}

	stored, err := svc.ForUser(context.Background(), "route-1", "user-1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if stored.Rating != 5 || stored.Text != "first" {
		t.Fatalf("original review modified: %+v", stored)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateReviewMissingRoute(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "reviews_route_id_fkey"})

	_, err = NewService(mock).Create(context.Background(), "missing", "user-1", CreateReviewRequest{Rating: 3})
	if !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("expected route not found, got %v", err)
	}
}

func TestCreateReviewDeletedUser(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "reviews_user_id_fkey"})

	_, err = NewService(mock).Create(context.Background(), "route-1", "gone", CreateReviewRequest{Rating: 3})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("deleted user reported as missing route")
	}
}

func TestExists(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("route-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewService(mock).Exists(context.Background(), "route-1", "user-1")
	if err != nil || !ok {
		t.Fatalf("expected existing review: %v", err)
	}
}

func TestForUserNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM reviews rv`).WithArgs("route-1", "user-2").WillReturnError(pgx.ErrNoRows)

	if _, err := NewService(mock).ForUser(context.Background(), "route-1", "user-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListByRouteLimit(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`ORDER BY rv.created_at DESC LIMIT 10`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows(reviewColumns).
			AddRow("r2", "route-1", "u2", "bob", 3, "", now).
			AddRow("r1", "route-1", "u1", "ann", 5, "great", now.Add(-time.Hour)))

	reviews, err := NewService(mock).ListByRoute(context.Background(), "route-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 2 || reviews[0].ID != "r2" {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
	if AverageRating(reviews) != 4 {
		t.Fatalf("unexpected average")
	}
}

func TestListByRouteUnlimitedAndError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`ORDER BY rv.created_at DESC$`).
		WithArgs("route-1").
		WillReturnRows(pgxmock.NewRows(reviewColumns))
	mock.ExpectQuery(`FROM reviews rv`).WithArgs("route-2").WillReturnError(errDB)

	svc := NewService(mock)
	reviews, err := svc.ListByRoute(context.Background(), "route-1", 0)
	if err != nil || reviews == nil || len(reviews) != 0 {
		t.Fatalf("expected empty non-nil slice: %v %v", reviews, err)
	}
	if _, err := svc.ListByRoute(context.Background(), "route-2", 0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCount(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewService(mock).Count(context.Background())
	if err != nil || n != 7 {
		t.Fatalf("count: %d %v", n, err)
	}
}
