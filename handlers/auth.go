package handlers

import (
	"net/http"

	"quadras/models"
	userSvc "quadras/services/user"
	"quadras/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the email/password recovery
// endpoints.
type AuthHandler struct {
	Users userSvc.UserService
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.Users.Register(&req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

// Login handles POST /auth/login. The payload is form-encoded with username
// and password fields; the username may be an email address.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required", "")
		return
	}
	token, err := h.Users.Login(username, password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// VerifyEmail handles POST /auth/verify-email/:token, also accepting the
// token in the body on the bare path.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		var req struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		token = req.Token
	}
	if err := h.Users.VerifyEmail(token); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Users.RequestPasswordReset(req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the address exists, a reset code was sent"})
}

// ResetPassword handles POST /auth/reset-password/:token, also accepting the
// token in the body on the bare path.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token := c.Param("token")
	if token == "" {
		token = req.Token
	}
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "token is required", "")
		return
	}
	if err := h.Users.ResetPassword(token, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
