package handlers

import (
	"net/http"
	"strconv"

	"quadras/middleware"
	"quadras/models"
	arenaSvc "quadras/services/arena"

	"github.com/gin-gonic/gin"
)

// ArenaHandler serves the venue catalogue, owner management, reviews and the
// arena payment ledger.
type ArenaHandler struct {
	Arenas arenaSvc.ArenaService
}

// List handles GET /arenas.
func (h *ArenaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	filter := models.ArenaFilter{
		Name:         c.Query("name"),
		City:         c.Query("city"),
		State:        c.Query("state"),
		Neighborhood: c.Query("neighborhood"),
		Page:         page,
		ItemsPerPage: perPage,
	}
	active := true
	filter.Active = &active

	arenas, total, err := h.Arenas.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arenas": arenas, "total_items": total})
}

// AdminList handles GET /admin/arenas. Unlike the public listing it does not
// force the active filter; an explicit active query narrows it.
func (h *ArenaHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	filter := models.ArenaFilter{
		Name:         c.Query("name"),
		City:         c.Query("city"),
		State:        c.Query("state"),
		Neighborhood: c.Query("neighborhood"),
		Page:         page,
		ItemsPerPage: perPage,
	}
	if v, ok := c.GetQuery("active"); ok {
		active := v == "true"
		filter.Active = &active
	}

	arenas, total, err := h.Arenas.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arenas": arenas, "total_items": total})
}

// Get handles GET /arenas/:id.
func (h *ArenaHandler) Get(c *gin.Context) {
	arena, err := h.Arenas.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, arena)
}

// ListMine handles GET /arenas/mine.
func (h *ArenaHandler) ListMine(c *gin.Context) {
	arenas, err := h.Arenas.ListMine(middleware.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arenas": arenas})
}

// Create handles POST /arenas.
func (h *ArenaHandler) Create(c *gin.Context) {
	var arena models.Arena
	if err := c.ShouldBindJSON(&arena); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Arenas.Create(middleware.Actor(c), &arena)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /arenas/:id.
func (h *ArenaHandler) Update(c *gin.Context) {
	var upd models.ArenaUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	arena, err := h.Arenas.Update(middleware.Actor(c), c.Param("id"), &upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, arena)
}

// Delete handles DELETE /arenas/:id.
func (h *ArenaHandler) Delete(c *gin.Context) {
	if err := h.Arenas.Delete(middleware.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "arena deleted"})
}

// CreateReview handles POST /reviews.
func (h *ArenaHandler) CreateReview(c *gin.Context) {
	var req models.ReviewCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	review, err := h.Arenas.AddReview(middleware.Actor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListReviews handles GET /arenas/:id/reviews.
func (h *ArenaHandler) ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	reviews, total, err := h.Arenas.ListReviews(c.Param("id"), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total_items": total})
}

// ListPayments handles GET /arenas/:id/payments.
func (h *ArenaHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	payments, total, err := h.Arenas.ListPayments(middleware.Actor(c), c.Param("id"), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "total_items": total})
}
