package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newServer() *echo.Echo {
	e := echo.New()
	SetupRequestID(e)
	SetupRequestLogger(e)
	e.GET("/weather/current", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"request_id": c.Response().Header().Get(echo.HeaderXRequestID)})
	})
	e.GET("/weather/fail", func(c echo.Context) error {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "upstream"})
	})
	return e
}

func TestRequestID_Generated(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather/current", nil))

	id := rec.Header().Get(echo.HeaderXRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-Id = %q is not a UUID: %v", id, err)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/weather/current", nil)
	req.Header.Set(echo.HeaderXRequestID, "caller-id")
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderXRequestID); got != "caller-id" {
		t.Errorf("X-Request-Id = %q, want caller-id", got)
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	e := newServer()

	for target, want := range map[string]int{
		"/weather/current": http.StatusOK,
		"/weather/fail":    http.StatusBadGateway,
		"/missing":         http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != want {
			t.Errorf("%s status = %d, want %d", target, rec.Code, want)
		}
	}
}
