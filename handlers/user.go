package handlers

import (
	"net/http"
	"strconv"

	"quadras/middleware"
	"quadras/models"
	userSvc "quadras/services/user"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and admin account endpoints.
type UserHandler struct {
	Users userSvc.UserService
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	actor := middleware.Actor(c)
	u, err := h.Users.Get(actor, actor.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateMe handles PUT /users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	actor := middleware.Actor(c)
	u, err := h.Users.Update(actor, actor.ID, &upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Get handles GET /admin/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.Get(middleware.Actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Update handles PUT /admin/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Users.Update(middleware.Actor(c), c.Param("id"), &upd)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /admin/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(middleware.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// List handles GET /admin/users.
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("items_per_page", "0"))

	users, total, err := h.Users.List(middleware.Actor(c),
		c.Query("role"), c.Query("search"), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total_items": total})
}
