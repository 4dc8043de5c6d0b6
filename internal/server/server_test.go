package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend-hikeroutes/internal/config"

	"github.com/pashagolub/pgxmock/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:        "secret",
		ServerPort:       ":0",
		CORSOrigins:      "*",
		RouteCheckWindow: time.Hour,
	}
}

func TestHealthRoute(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestMetricsRoute(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)

	if _, err := s.App.Test(httptest.NewRequest("GET", "/health", nil)); err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp, err := s.App.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "hikeroutes_http_requests_total") {
		t.Fatalf("expected request counter in exposition")
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := NewServer(testConfig(), nil, nil, nil)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodPost, "/routes/", strings.NewReader("{}")))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestStatsRoute(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM routes`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM points_of_interest`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reviews`).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

	s := NewServer(testConfig(), mock, nil, nil)
	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/stats", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("stats request: %v", err)
	}
	var body map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["routes_count"] != 3 || body["points_count"] != 4 || body["reviews_count"] != 5 {
		t.Fatalf("unexpected stats: %v", body)
	}
}

func TestServerErrorsAreLogged(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM routes`).WillReturnError(io.ErrUnexpectedEOF)

	core, logs := observer.New(zapcore.ErrorLevel)
	s := NewServer(testConfig(), mock, nil, zap.New(core))

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/stats", nil))
	if err != nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500: %v", err)
	}
	if logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("expected failure to be logged")
	}

	resp, _ = s.App.Test(httptest.NewRequest(http.MethodGet, "/points/nearby", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("client errors should not be logged")
	}
}
