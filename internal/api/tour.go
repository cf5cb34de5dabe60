package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"travel_api/internal/domain"    // Importing domain models
	"travel_api/internal/events"    // Domain event publishing
	"travel_api/internal/tourquery" // Listing pipeline
	"travel_api/internal/utils"     // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ListToursHandler lists the tours of a travel, filtered by price and date,
// optionally sorted by price, one page at a time
func ListToursHandler(db *gorm.DB, rdb *redis.Client, perPage int, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw tourquery.RawParams
		_ = c.ShouldBindQuery(&raw)          // All fields are strings, binding cannot fail
		params, errs := tourquery.Parse(raw) // Validate before touching the store
		if errs != nil {
			respondValidation(c, errs)
			return
		}
		ctx := c.Request.Context()
		travelSlug := c.Param("slug")
		cacheKey := toursCacheKey(travelSlug) + params.CacheKey()
		var resp ListResponse[TourResource]
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &resp); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, resp)
			return
		}
		page, err := tourquery.ListTours(ctx, db, travelSlug, params, perPage)
		if errors.Is(err, tourquery.ErrTravelNotFound) {
			respondNotFound(c, "Travel")
			return
		}
		if err != nil {
			respondStoreError(c, err, "Failed to fetch tours", logrus.Fields{"slug": travelSlug})
			return
		}
		resp = newList(page, NewTourResource)
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, resp)
	}
}

// CreateTourHandler adds a tour to the travel named by the id path parameter
func CreateTourHandler(db *gorm.DB, rdb *redis.Client, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		travel, ok := findTravel(ctx, c, db)
		if !ok {
			return
		}
		var req TourRequest // Bind JSON request to struct
		if errs := bindJSON(c, &req); errs != nil {
			respondValidation(c, errs)
			return
		}
		tour, errs := req.Tour()
		if errs != nil {
			respondValidation(c, errs)
			return
		}
		tour.TravelID = travel.ID
		// Save the new tour
		if err := db.WithContext(ctx).Create(&tour).Error; err != nil {
			respondStoreError(c, err, "Failed to create tour", logrus.Fields{"travel_id": travel.ID})
			return
		}
		afterTourWrite(ctx, c, rdb, pub, events.TourCreated, travel, tour)
		c.JSON(http.StatusCreated, ItemResponse[TourResource]{Data: NewTourResource(tour)})
	}
}

// UpdateTourHandler replaces the fields of a tour of the travel named by the id path parameter
func UpdateTourHandler(db *gorm.DB, rdb *redis.Client, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		travel, ok := findTravel(ctx, c, db)
		if !ok {
			return
		}
		var existing domain.Tour
		tourID, err := strconv.ParseUint(c.Param("tour"), 10, 64)
		if err == nil {
			err = db.WithContext(ctx).Where("travel_id = ?", travel.ID).First(&existing, uint(tourID)).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, strconv.ErrSyntax) || errors.Is(err, strconv.ErrRange) {
				respondNotFound(c, "Tour")
			} else {
				respondStoreError(c, err, "Failed to load tour", logrus.Fields{"tour_id": tourID})
			}
			return
		}
		var req TourRequest // Bind JSON request to struct
		if errs := bindJSON(c, &req); errs != nil {
			respondValidation(c, errs)
			return
		}
		tour, errs := req.Tour()
		if errs != nil {
			respondValidation(c, errs)
			return
		}
		tour.ID = existing.ID
		tour.TravelID = existing.TravelID
		tour.CreatedAt = existing.CreatedAt
		if err := db.WithContext(ctx).Save(&tour).Error; err != nil {
			respondStoreError(c, err, "Failed to update tour", logrus.Fields{"tour_id": tour.ID})
			return
		}
		afterTourWrite(ctx, c, rdb, pub, events.TourUpdated, travel, tour)
		c.JSON(http.StatusOK, ItemResponse[TourResource]{Data: NewTourResource(tour)})
	}
}

// afterTourWrite invalidates the cached tour listings of travel, logs and publishes the change
func afterTourWrite(ctx context.Context, c *gin.Context, rdb *redis.Client, pub events.Publisher, key string, travel domain.Travel, tour domain.Tour) {
	_ = utils.DeleteCachePrefix(ctx, rdb, toursCacheKey(travel.Slug)) // Invalidate tour listing cache
	actorID := actor(c)
	// Log successful write
	logrus.WithFields(logrus.Fields{
		"travel_id": travel.ID,  // Owning travel
		"tour_id":   tour.ID,    // Tour ID
		"price":     tour.Price, // Price in cents
		"user_id":   actorID,    // Acting user
		"type":      key,        // Event type
	}).Info("Tour saved")
	_ = pub.Publish(ctx, key, events.TourEvent{
		TourID:     tour.ID,
		TravelID:   travel.ID,
		Name:       tour.Name,
		StartDate:  tour.StartDate.Format(domain.DateLayout),
		EndDate:    tour.EndDate.Format(domain.DateLayout),
		PriceCents: tour.Price,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
