package router

import (
	"net/http"
	"time"

	"caktus/internal/auth"
	"caktus/internal/middleware"
	"caktus/internal/plant"
	"caktus/internal/report"
	"caktus/internal/sensor"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the handlers and HTTP settings the API is assembled from.
type Deps struct {
	Auth    *auth.Handler
	Plants  *plant.Handler
	Reports *report.Handler
	Sensors *sensor.Handler

	CORSOrigins []string
	// LLMRatePerMin caps LLM-backed calls per user; zero disables the cap.
	LLMRatePerMin int
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}

	llmLimit := middleware.RateLimit(d.LLMRatePerMin, 3)

	// ───────────────────────── PLANTS ─────────────────────────
	plants := r.Group("/plants")
	plants.Use(middleware.AuthMiddleware())
	{
		plants.GET("", d.Plants.List)
		plants.POST("", d.Plants.Create)
		plants.GET("/presets", d.Plants.Presets)
		plants.POST("/search", llmLimit, d.Plants.Search)
		plants.GET("/:id", d.Plants.Get)
		plants.DELETE("/:id", d.Plants.Delete)
		plants.POST("/:id/photo", d.Plants.UploadPhoto)
		plants.GET("/:id/conditions", d.Reports.Conditions)
		plants.POST("/:id/report", llmLimit, d.Reports.Generate)
	}

	// ───────────────────────── DEVICES ─────────────────────────
	devices := r.Group("/devices")
	devices.Use(middleware.AuthMiddleware())
	{
		devices.GET("", d.Sensors.Devices)
		devices.POST("/scan", d.Sensors.StartScan)
		devices.POST("/scan/stop", d.Sensors.StopScan)
		devices.POST("/disconnect", d.Sensors.Disconnect)
		devices.POST("/:id/connect", d.Sensors.Connect)
	}

	// ───────────────────────── READINGS ─────────────────────────
	readings := r.Group("/readings")
	readings.Use(middleware.AuthMiddleware())
	{
		readings.GET("", d.Sensors.History)
		readings.GET("/latest", d.Sensors.Latest)
	}

	return r
}
