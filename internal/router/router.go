// Package router wires handlers and middleware into the gin engine
package router

import (
	"time" // Time handling

	"travel_api/internal/api"        // API handlers
	"travel_api/internal/authz"      // Authorization policies
	"travel_api/internal/events"     // Domain event publishing
	"travel_api/internal/middleware" // Middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the collaborators shared by every handler. Redis may be nil
type Deps struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Publisher      events.Publisher
	JWTSecret      string
	ToursPerPage   int
	TravelsPerPage int
	CacheTTL       time.Duration
}

// Register mounts the v1 API on r
func Register(r *gin.Engine, d Deps) {
	if d.Publisher == nil {
		d.Publisher = events.Nop{}
	}
	v1 := r.Group("/api/v1")

	// Public routes
	v1.GET("/travels", api.ListTravelsHandler(d.DB, d.Redis, d.TravelsPerPage, d.CacheTTL))
	v1.GET("/travels/:slug/tours", api.ListToursHandler(d.DB, d.Redis, d.ToursPerPage, d.CacheTTL))
	v1.POST("/login", api.LoginHandler(d.DB, d.JWTSecret))

	// Admin routes, every one behind JWT and a role policy
	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(d.DB, d.JWTSecret))
	admin.POST("/travels", middleware.RequireAction(authz.CreateTravel), api.CreateTravelHandler(d.DB, d.Redis, d.Publisher))
	admin.PUT("/travels/:id", middleware.RequireAction(authz.UpdateTravel), api.UpdateTravelHandler(d.DB, d.Redis, d.Publisher))
	admin.POST("/travels/:id/tours", middleware.RequireAction(authz.CreateTour), api.CreateTourHandler(d.DB, d.Redis, d.Publisher))
	admin.PUT("/travels/:id/tours/:tour", middleware.RequireAction(authz.UpdateTour), api.UpdateTourHandler(d.DB, d.Redis, d.Publisher))
}

// New returns an engine with recovery, request logging and the v1 API
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	Register(r, d)
	return r
}
