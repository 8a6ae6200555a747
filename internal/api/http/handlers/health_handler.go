package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/persistence"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	startedAt   time.Time
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

type checkResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandler returns a handler that probes the given dependencies.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		startedAt:   time.Now().UTC(),
		postgres:    postgres,
		redis:       redis,
	}
}

// Live GET /health/live. Answers as long as the process runs.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ready GET /health/ready. Degraded (503) when postgres or redis is
// unreachable, so the load balancer stops routing tickets here.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := map[string]checkResult{
		"postgres": check(h.postgres.Ping(ctx)),
		"redis":    check(h.redis.Ping(ctx)),
	}

	status := "ready"
	code := fiber.StatusOK
	for _, result := range checks {
		if !result.OK {
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			break
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": h.serviceName,
		"checks":  checks,
	})
}

func check(err error) checkResult {
	if err != nil {
		return checkResult{Error: err.Error()}
	}
	return checkResult{OK: true}
}
