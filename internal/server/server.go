// Package server assembles the HTTP router for the mining pools API.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robsahakyan/mining-pools/internal/health"
	"github.com/robsahakyan/mining-pools/internal/metrics"
	"github.com/robsahakyan/mining-pools/internal/middleware"
	"github.com/robsahakyan/mining-pools/internal/miningpool"
)

const serviceName = "mining-pools-api"

// Deps is everything the router needs
type Deps struct {
	Service        miningpool.Service
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	HealthChecks   map[string]health.Check
	AllowedOrigins []string
}

// NewRouter wires middleware, operational endpoints and the mining pool routes
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	// Observers go ahead of CORS, which aborts preflights.
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	router.GET("/health", health.NewHandler(serviceName, deps.HealthChecks).Health)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	miningpool.NewHandler(deps.Service).RegisterRoutes(router)

	return router
}
