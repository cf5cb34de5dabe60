package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"travel_api/internal/domain"     // Importing domain models
	"travel_api/internal/events"     // Domain event publishing
	"travel_api/internal/middleware" // Authenticated principal
	"travel_api/internal/tourquery"  // Listing pipeline
	"travel_api/internal/utils"      // Utility functions
	"travel_api/internal/validation" // Field errors

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/gosimple/slug"     // Slug generation
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key prefixes of the listing endpoints
const (
	travelsCachePrefix = "travels:"
	toursCachePrefix   = "tours:"
)

func toursCacheKey(travelSlug string) string {
	return toursCachePrefix + travelSlug + ":"
}

// ListTravelsHandler returns the public travels, one page at a time
func ListTravelsHandler(db *gorm.DB, rdb *redis.Client, perPage int, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, errs := tourquery.ParsePage(c.Query("page")) // Validate page number
		if errs != nil {
			respondValidation(c, errs)
			return
		}
		ctx := c.Request.Context()
		cacheKey := travelsCachePrefix + "page=" + strconv.Itoa(page)
		var resp ListResponse[TravelResource]
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &resp); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, resp)
			return
		}
		result, err := tourquery.ListPublicTravels(ctx, db, page, perPage)
		if err != nil {
			respondStoreError(c, err, "Failed to fetch travels", logrus.Fields{"page": page})
			return
		}
		resp = newList(result, NewTravelResource)
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl)
		c.Header("X-Cache", "MISS")
		c.JSON(http.StatusOK, resp)
	}
}

// CreateTravelHandler creates a travel. The slug is derived from the name
func CreateTravelHandler(db *gorm.DB, rdb *redis.Client, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TravelRequest // Bind JSON request to struct
		if errs := bindJSON(c, &req); errs != nil {
			respondValidation(c, errs)
			return
		}
		ctx := c.Request.Context()
		var travel domain.Travel
		req.apply(&travel)
		travel.Slug = slug.Make(travel.Name)
		if errs := checkTravelName(ctx, db, travel, 0); errs != nil {
			respondValidation(c, errs)
			return
		}
		// Save the new travel
		if err := db.WithContext(ctx).Create(&travel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondConflict(c, "A travel with this name or slug already exists.")
				return
			}
			respondStoreError(c, err, "Failed to create travel", logrus.Fields{"name": travel.Name})
			return
		}
		afterTravelWrite(ctx, c, rdb, pub, events.TravelCreated, travel)
		c.JSON(http.StatusCreated, ItemResponse[TravelResource]{Data: NewTravelResource(travel)})
	}
}

// UpdateTravelHandler replaces the fields of an existing travel. The slug is kept
func UpdateTravelHandler(db *gorm.DB, rdb *redis.Client, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		travel, ok := findTravel(ctx, c, db)
		if !ok {
			return
		}
		var req TravelRequest // Bind JSON request to struct
		if errs := bindJSON(c, &req); errs != nil {
			respondValidation(c, errs)
			return
		}
		req.apply(&travel)
		if errs := checkTravelName(ctx, db, travel, travel.ID); errs != nil {
			respondValidation(c, errs)
			return
		}
		if err := db.WithContext(ctx).Save(&travel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondConflict(c, "A travel with this name already exists.")
				return
			}
			respondStoreError(c, err, "Failed to update travel", logrus.Fields{"travel_id": travel.ID})
			return
		}
		afterTravelWrite(ctx, c, rdb, pub, events.TravelUpdated, travel)
		c.JSON(http.StatusOK, ItemResponse[TravelResource]{Data: NewTravelResource(travel)})
	}
}

// checkTravelName enforces a unique name and a non-empty slug. exceptID
// excludes the travel being updated
func checkTravelName(ctx context.Context, db *gorm.DB, travel domain.Travel, exceptID uint) validation.FieldErrors {
	if travel.Slug == "" {
		return validation.FieldErrors{"name": {"The name field must contain letters or digits."}}
	}
	var count int64
	query := db.WithContext(ctx).Model(&domain.Travel{}).Where("name = ?", travel.Name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		// Let the unique index decide
		return nil
	}
	if count > 0 {
		return validation.FieldErrors{"name": {"The name has already been taken."}}
	}
	return nil
}

// findTravel loads the travel named by the id path parameter, writing a 404 when absent
func findTravel(ctx context.Context, c *gin.Context, db *gorm.DB) (domain.Travel, bool) {
	var travel domain.Travel
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondNotFound(c, "Travel")
		return travel, false
	}
	if err := db.WithContext(ctx).First(&travel, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Travel")
		} else {
			respondStoreError(c, err, "Failed to load travel", logrus.Fields{"travel_id": id})
		}
		return travel, false
	}
	return travel, true
}

// afterTravelWrite invalidates cached listings, logs and publishes the change
func afterTravelWrite(ctx context.Context, c *gin.Context, rdb *redis.Client, pub events.Publisher, key string, travel domain.Travel) {
	_ = utils.DeleteCachePrefix(ctx, rdb, travelsCachePrefix)         // Invalidate travel listing cache
	_ = utils.DeleteCachePrefix(ctx, rdb, toursCacheKey(travel.Slug)) // Invalidate tour listing cache
	actorID := actor(c)
	// Log successful write
	logrus.WithFields(logrus.Fields{
		"travel_id": travel.ID,   // Travel ID
		"slug":      travel.Slug, // Travel slug
		"user_id":   actorID,     // Acting user
		"type":      key,         // Event type
	}).Info("Travel saved")
	_ = pub.Publish(ctx, key, events.TravelEvent{
		TravelID:     travel.ID,
		Slug:         travel.Slug,
		Name:         travel.Name,
		IsPublic:     travel.IsPublic,
		NumberOfDays: travel.NumberOfDays,
		ActorID:      actorID,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

// actor returns the ID of the authenticated user, or 0
func actor(c *gin.Context) uint {
	if p := middleware.Principal(c); p != nil {
		return p.UserID
	}
	return 0
}
