package handlers

import (
	"net/http"
	"strconv"

	settingsRepo "quadras/database/repository/settings"
	"quadras/middleware"
	"quadras/models"
	bookingSvc "quadras/services/booking"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves platform settings and cross-arena booking oversight.
type AdminHandler struct {
	Settings settingsRepo.SettingsRepository
	Bookings bookingSvc.BookingService
}

// GetSettings handles GET /admin/settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.Settings.Get()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /admin/settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var settings models.PlatformSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Settings.Save(&settings); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListBookings handles GET /admin/bookings across all arenas.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	result, err := h.Bookings.ListForArena(middleware.Actor(c), models.BookingFilter{
		ArenaID:      c.Query("arena_id"),
		CourtID:      c.Query("court_id"),
		UserID:       c.Query("user_id"),
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
