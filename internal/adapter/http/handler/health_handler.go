package handler

import (
	"context"
	"net/http"
	"time"

	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck pings every dependency and reports 503 when any is down.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

// ProjectionHealth reports the projector's dependencies, lag and counters.
func ProjectionHealth(projection ports.ProjectionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := projection.Health(c.Request.Context())
		httpCode := http.StatusOK
		if health.Status != "healthy" {
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       health.Status,
			"dependencies": health.Dependencies,
			"lag":          health.Lag,
			"stats":        projection.Stats(),
		})
	}
}
