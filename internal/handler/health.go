package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/middleware"
	"github.com/hacktrack/hacktrack/internal/server"
)

// HealthHandler exposes the status endpoint that load balancers and
// uptime monitors poll.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports overall status plus per-dependency checks for the
// database and Redis. A failing database check makes the whole response
// 503; Redis only backs background email delivery, so its failure is
// reported but does not flip overall health.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	isHealthy := true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		checks["database"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		isHealthy = false

		logger.Error().Err(err).Dur("response_time", time.Since(dbStart)).Msg("database health check failed")
		h.recordHealthCheckError("database", err)
	} else {
		checks["database"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	if h.server.Redis != nil {
		redisStart := time.Now()
		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}

			logger.Error().Err(err).Dur("response_time", time.Since(redisStart)).Msg("redis health check failed")
			h.recordHealthCheckError("redis", err)
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !isHealthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable

		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	return c.JSON(code, map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	})
}

func (h *HealthHandler) recordHealthCheckError(checkType string, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":    checkType,
		"operation":     "health_check",
		"error_message": err.Error(),
	})
}
