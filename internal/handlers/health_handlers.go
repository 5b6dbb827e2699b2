package handlers

import (
	"context"
	"net/http"
	"time"

	"staymart/internal/caching"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	db    *pgxpool.Pool
	cache caching.CacheService
}

func NewHealthHandlers(db *pgxpool.Pool, cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache}
}

// HealthCheck reports per-dependency status; degraded if any probe fails.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	servicesStatus := map[string]string{"database": "healthy", "redis": "healthy"}

	if err := h.db.Ping(ctx); err != nil {
		servicesStatus["database"] = "unhealthy"
		status = "degraded"
	}
	if err := h.cache.Ping(ctx); err != nil {
		servicesStatus["redis"] = "unhealthy"
		status = "degraded"
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, echo.Map{
		"status":    status,
		"services":  servicesStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck reports whether the service can take traffic; only the
// database is critical.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
}
