package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"quadras/middleware"
	"quadras/models"
	bookingSvc "quadras/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves reservation endpoints.
type BookingHandler struct {
	Bookings bookingSvc.BookingService
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Bookings.Create(middleware.Actor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.Get(middleware.Actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMine handles GET /bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	result, err := h.Bookings.ListForUser(middleware.Actor(c).ID, c.Query("status"), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListForArena handles GET /arenas/:id/bookings.
func (h *BookingHandler) ListForArena(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	result, err := h.Bookings.ListForArena(middleware.Actor(c), models.BookingFilter{
		ArenaID:      c.Param("id"),
		CourtID:      c.Query("court_id"),
		Status:       c.Query("status"),
		Page:         page,
		ItemsPerPage: perPage,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatus handles PUT /bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var upd models.BookingStatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Bookings.UpdateStatus(middleware.Actor(c), c.Param("id"), &upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Cancel handles POST /bookings/:id/cancel. An empty body is a cancellation
// without reason or refund request.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req models.BookingCancellation
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	b, err := h.Bookings.Cancel(middleware.Actor(c), c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PaymentStatus handles GET /bookings/:id/payment-status.
func (h *BookingHandler) PaymentStatus(c *gin.Context) {
	status, err := h.Bookings.PaymentStatus(middleware.Actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
