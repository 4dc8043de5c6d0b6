package routecheck

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-hikeroutes/internal/shared/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newTestApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler})
	RegisterRoutes(app.Group("/routes"), svc)
	return app
}

func expectRouteExists(mock pgxmock.PgxPoolIface, routeID string, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM routes WHERE id=\$1\)`).
		WithArgs(routeID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestCheckHandlersHistory(t *testing.T) {
	mock := newMock(t)
	now := time.Now()
	expectRouteExists(mock, "r1", true)
	mock.ExpectQuery(`FROM route_checks WHERE route_id=\$1`).
		WithArgs("r1", defaultHistoryLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "route_id", "bucket", "checked_at", "weather_summary",
			"weather_temp", "weather_precipitation", "parking_status", "overall_score"}).
			AddRow("c1", "r1", now, now, "Cool", 12.0, 0.0, "limited", 64))

	app := newTestApp(NewService(mock, nil, time.Hour))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/routes/r1/checks?limit=1000", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("history: %v", err)
	}
	var checks []Check
	if err := json.NewDecoder(resp.Body).Decode(&checks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(checks) != 1 || checks[0].OverallScore != 64 {
		t.Fatalf("unexpected checks: %+v", checks)
	}
}

func TestCheckHandlersMissingRoute(t *testing.T) {
	mock := newMock(t)
	expectRouteExists(mock, "missing", false)

	app := newTestApp(NewService(mock, nil, time.Hour))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/routes/missing/checks", nil))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
