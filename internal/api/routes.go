// Package api wires HTTP routes to their handlers.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/itamarh/voicedca/internal/api/handlers"
	"github.com/itamarh/voicedca/internal/middleware"
)

// SetupRoutes registers middleware and all routes on the router.
func SetupRoutes(router *gin.Engine, ivr *handlers.IVRHandler, logger *logrus.Logger) {
	router.Use(middleware.RequestLogger(logger))

	// Health check endpoint
	router.GET("/health", handlers.Health)

	// Telephony webhook called by the IVR flow
	router.GET("/ivr", ivr.ProcessInvestmentQuery)
}
