package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flexliving/reviews-api/internal/business/listings"
	"github.com/flexliving/reviews-api/internal/business/reviews"
	syncsvc "github.com/flexliving/reviews-api/internal/business/sync"
	"github.com/flexliving/reviews-api/internal/platform/hostaway"
	"github.com/flexliving/reviews-api/pkg/model"
)

// Router wires HTTP handlers.
type Router struct {
	reviews  *reviews.Service
	listings *listings.Service
	sync     *syncsvc.Service
	origins  string
}

func NewRouter(reviewSvc *reviews.Service, listingSvc *listings.Service, syncSvc *syncsvc.Service, allowedOrigins string) *gin.Engine {
	r := &Router{
		reviews:  reviewSvc,
		listings: listingSvc,
		sync:     syncSvc,
		origins:  allowedOrigins,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/reviews", r.listReviews)
		api.POST("/reviews", r.saveReviews)
		api.POST("/reviews/approvals", r.updateApprovals)

		api.GET("/properties", r.listProperties)
		api.POST("/properties", r.createProperty)
		api.GET("/properties/:id", r.getProperty)
		api.PATCH("/properties/:id", r.updateProperty)
		api.DELETE("/properties/:id", r.deleteProperty)

		api.POST("/sync", r.startSync)
		api.GET("/sync/runs", r.listSyncRuns)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) listReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := r.reviews.List(c.Request.Context(), hostaway.ReviewQuery{
		ListingID: c.Query("listingId"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r *Router) saveReviews(c *gin.Context) {
	var revs []model.Review
	if err := c.BindJSON(&revs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := r.reviews.SaveLocal(c.Request.Context(), revs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *Router) updateApprovals(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	updates, err := r.reviews.UpdateApprovals(c.Request.Context(), body)
	if err != nil {
		if errors.Is(err, reviews.ErrNoUpdates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save approvals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applied": len(updates)})
}

func (r *Router) listProperties(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	result, err := r.listings.List(c.Request.Context(), hostaway.ListingQuery{
		Limit:   limit,
		City:    c.Query("city"),
		Country: c.Query("country"),
		Match:   c.Query("match"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r *Router) getProperty(c *gin.Context) {
	listing, err := r.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (r *Router) createProperty(c *gin.Context) {
	var input listings.CreateInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	created, err := r.listings.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, listings.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save property"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (r *Router) updateProperty(c *gin.Context) {
	var patch map[string]any
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	updated, err := r.listings.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (r *Router) deleteProperty(c *gin.Context) {
	removed, err := r.listings.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, listings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

func (r *Router) startSync(c *gin.Context) {
	run, err := r.sync.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, syncsvc.ErrUpstreamDisabled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync run failed"})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (r *Router) listSyncRuns(c *gin.Context) {
	runs, err := r.sync.Runs(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sync runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": runs})
}
