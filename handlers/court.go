package handlers

import (
	"net/http"
	"strconv"

	"quadras/middleware"
	"quadras/models"
	bookingSvc "quadras/services/booking"
	courtSvc "quadras/services/court"
	"quadras/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// CourtHandler serves the court catalogue, availability lookups, owner-side
// court management and the extra-service catalogue.
type CourtHandler struct {
	Courts   courtSvc.CourtService
	Bookings bookingSvc.BookingService
}

// List handles GET /courts.
func (h *CourtHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	filter := models.CourtFilter{
		ArenaID:      c.Query("arena_id"),
		Type:         c.Query("type"),
		City:         c.Query("city"),
		State:        c.Query("state"),
		Neighborhood: c.Query("neighborhood"),
		SortBy:       c.Query("sort_by"),
		Page:         page,
		ItemsPerPage: perPage,
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}

	courts, total, err := h.Courts.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": courts, "total_items": total})
}

// Get handles GET /courts/:id.
func (h *CourtHandler) Get(c *gin.Context) {
	court, err := h.Courts.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// ListByArena handles GET /arenas/:id/courts.
func (h *CourtHandler) ListByArena(c *gin.Context) {
	courts, err := h.Courts.ListByArena(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": courts})
}

// Availability handles GET /courts/:id/availability.
func (h *CourtHandler) Availability(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "start_date is required", "")
		return
	}
	if endDate == "" {
		endDate = startDate
	}
	availability, err := h.Bookings.Availability(c.Param("id"), startDate, endDate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// Create handles POST /courts.
func (h *CourtHandler) Create(c *gin.Context) {
	var court models.Court
	if err := c.ShouldBindJSON(&court); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Courts.Create(middleware.Actor(c), &court)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /courts/:id.
func (h *CourtHandler) Update(c *gin.Context) {
	var upd models.CourtUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	court, err := h.Courts.Update(middleware.Actor(c), c.Param("id"), &upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}

// Delete handles DELETE /courts/:id.
func (h *CourtHandler) Delete(c *gin.Context) {
	if err := h.Courts.Delete(middleware.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "court deleted"})
}

// ListExtraServices handles GET /arenas/:id/extra-services.
func (h *CourtHandler) ListExtraServices(c *gin.Context) {
	services, err := h.Courts.ListExtraServices(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extra_services": services})
}

// CreateExtraService handles POST /extra-services.
func (h *CourtHandler) CreateExtraService(c *gin.Context) {
	var svc models.ExtraService
	if err := c.ShouldBindJSON(&svc); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Courts.CreateExtraService(middleware.Actor(c), &svc)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateExtraService handles PUT /extra-services/:id.
func (h *CourtHandler) UpdateExtraService(c *gin.Context) {
	var req struct {
		Name            *string  `json:"name,omitempty"`
		Description     *string  `json:"description,omitempty"`
		Price           *float64 `json:"price,omitempty"`
		DiscountedPrice *float64 `json:"discounted_price,omitempty"`
		Active          *bool    `json:"active,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updateDoc := bson.M{}
	if req.Name != nil {
		updateDoc["name"] = *req.Name
	}
	if req.Description != nil {
		updateDoc["description"] = *req.Description
	}
	if req.Price != nil {
		updateDoc["price"] = *req.Price
	}
	if req.DiscountedPrice != nil {
		updateDoc["discounted_price"] = *req.DiscountedPrice
	}
	if req.Active != nil {
		updateDoc["active"] = *req.Active
	}

	svc, err := h.Courts.UpdateExtraService(middleware.Actor(c), c.Param("id"), updateDoc)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteExtraService handles DELETE /extra-services/:id.
func (h *CourtHandler) DeleteExtraService(c *gin.Context) {
	if err := h.Courts.DeleteExtraService(middleware.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "extra service deleted"})
}
