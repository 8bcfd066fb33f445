package server

import (
	"github.com/gin-gonic/gin"

	"hirepulse-backend/internal/shared/config"
	"hirepulse-backend/internal/shared/metrics"
	"hirepulse-backend/internal/shared/server/middleware"
)

// RouteRegistrar attaches a feature's routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	PredictionHandler RouteRegistrar
	WhatIfHandler     RouteRegistrar
	HealthHandler     RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(api)
	}

	// Everything past here requires an identified caller. JobContext keeps
	// the job route parameter visible to the request log for all handlers.
	authed := api.Group("")
	authed.Use(middleware.Identity(), middleware.JobContext())
	if deps.PredictionHandler != nil {
		deps.PredictionHandler.RegisterRoutes(authed)
	}
	if deps.WhatIfHandler != nil {
		deps.WhatIfHandler.RegisterRoutes(authed)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
