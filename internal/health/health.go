package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Check reports whether one dependency is reachable
type Check func(ctx context.Context) error

// Handler serves the /health endpoint
type Handler struct {
	service string
	checks  map[string]Check
	timeout time.Duration
}

// NewHandler creates a health handler running checks on every request
func NewHandler(service string, checks map[string]Check) *Handler {
	return &Handler{service: service, checks: checks, timeout: 2 * time.Second}
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	code := http.StatusOK
	results := make(gin.H, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			logrus.WithError(err).WithField("check", name).Warn("Health check failed")
			results[name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"service":   h.service,
		"checks":    results,
	})
}
