// Package analysis assembles the route detail view: catalog data from the
// stores plus the synthetic conditions and their combined score.
package analysis

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"backend-hikeroutes/internal/logger"
	"backend-hikeroutes/internal/parking"
	"backend-hikeroutes/internal/poi"
	"backend-hikeroutes/internal/review"
	"backend-hikeroutes/internal/route"
	"backend-hikeroutes/internal/routecheck"
	"backend-hikeroutes/internal/scoring"
	"backend-hikeroutes/internal/shared/geo"
	"backend-hikeroutes/internal/weather"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const detailReviewLimit = 10

var overallScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "hikeroutes_route_overall_score",
	Help:    "Overall route scores served on the detail view.",
	Buckets: prometheus.LinearBuckets(0, 10, 11),
}, []string{"difficulty"})

// Rand satisfies both the weather and parking generators.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type Routes interface {
	Get(ctx context.Context, id string) (route.Route, error)
	IsFavorited(ctx context.Context, routeID, userID string) (bool, error)
}

type Points interface {
	ListByRoute(ctx context.Context, routeID string) ([]poi.Point, error)
}

type Reviews interface {
	ListByRoute(ctx context.Context, routeID string, limit int) ([]review.Review, error)
	ForUser(ctx context.Context, routeID, userID string) (review.Review, error)
}

type Recorder interface {
	Record(ctx context.Context, c routecheck.Check) (bool, error)
}

type Detail struct {
	Route          route.Route      `json:"route"`
	Points         []poi.Point      `json:"points"`
	Reviews        []review.Review  `json:"reviews"`
	UserReview     *review.Review   `json:"user_review"`
	CanReview      bool             `json:"can_review"`
	IsFavorited    bool             `json:"is_favorited"`
	Weather        weather.Current  `json:"weather"`
	Parking        parking.Status   `json:"parking"`
	Analysis       scoring.Analysis `json:"analysis"`
	ChartData      weather.Forecast `json:"chart_data"`
	StraightLineKm float64          `json:"straight_line_km"`
}

type Service struct {
	routes    Routes
	points    Points
	reviews   Reviews
	checks    Recorder
	estimator parking.Estimator
	log       *zap.Logger

	now     func() time.Time
	newRand func() Rand
}

func NewService(routes Routes, points Points, reviews Reviews, checks Recorder, log *zap.Logger) *Service {
	return &Service{
		routes:    routes,
		points:    points,
		reviews:   reviews,
		checks:    checks,
		estimator: parking.NewEstimator(),
		log:       logger.OrNop(log),
		now:       time.Now,
		newRand:   defaultRand,
	}
}

func defaultRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Detail loads a route and computes its conditions. userID may be empty for
// anonymous viewers.
func (s *Service) Detail(ctx context.Context, routeID, userID string) (Detail, error) {
	r, err := s.routes.Get(ctx, routeID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Route:          r,
		StraightLineKm: geo.Distance(r.Start, r.Finish),
	}
	if d.Points, err = s.points.ListByRoute(ctx, routeID); err != nil {
		return Detail{}, err
	}
	if d.Reviews, err = s.reviews.ListByRoute(ctx, routeID, detailReviewLimit); err != nil {
		return Detail{}, err
	}

	if userID != "" {
		own, err := s.reviews.ForUser(ctx, routeID, userID)
		switch {
		case err == nil:
			d.UserReview = &own
		case errors.Is(err, review.ErrNotFound):
			d.CanReview = true
		default:
			return Detail{}, err
		}
		if d.IsFavorited, err = s.routes.IsFavorited(ctx, routeID, userID); err != nil {
			return Detail{}, err
		}
	}

	now := s.now()
	rnd := s.newRand()
	report := weather.Synthesize(now, r.Start, rnd)
	d.Weather = report.Current
	d.ChartData = report.Forecast
	d.Parking = s.estimator.Estimate(now, r.Start, rnd)
	d.Analysis = scoring.Aggregate(r.Difficulty, weather.QualityScore(report.Current), d.Parking.Score)
	overallScores.WithLabelValues(r.Difficulty).Observe(float64(d.Analysis.OverallScore))

	s.record(ctx, r.ID, now, d)
	return d, nil
}

// record stores the snapshot; failures only cost the history entry.
func (s *Service) record(ctx context.Context, routeID string, at time.Time, d Detail) {
	if s.checks == nil {
		return
	}
	_, err := s.checks.Record(ctx, routecheck.Check{
		RouteID:              routeID,
		CheckedAt:            at,
		WeatherSummary:       d.Weather.Description,
		WeatherTemp:          float64(d.Weather.Temperature),
		WeatherPrecipitation: float64(d.Weather.PrecipitationChance),
		ParkingStatus:        string(d.Parking.Status),
		OverallScore:         d.Analysis.OverallScore,
	})
	if err != nil {
		s.log.Warn("route check not recorded", zap.String("route_id", routeID), zap.Error(err))
	}
}
