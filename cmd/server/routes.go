package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"veriflow.backend/internal/interfaces/http/handlers"
	"veriflow.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	verificationHandler *handlers.VerificationHandler
	authMiddleware      gin.HandlerFunc
	issueLimiter        *middleware.RateLimiter
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Verification routes (protected)
		verify := v1.Group("/verify")
		verify.Use(d.authMiddleware)
		{
			issue := verify.Group("")
			if d.issueLimiter != nil {
				issue.Use(d.issueLimiter.Middleware())
			}
			issue.POST("/:channel/issue", d.verificationHandler.Issue)

			verify.POST("/:channel/validate", d.verificationHandler.Validate)
			verify.GET("/status", d.verificationHandler.Status)
		}
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "veriflow-backend",
			"version": "0.1.0",
		})
	})
}
