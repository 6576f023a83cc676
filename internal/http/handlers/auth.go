package handlers

import (
	"net/http"

	"taskmanager/internal/domain"
	"taskmanager/internal/logger"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  domain.UserResponse `json:"user"`
}

// Login verifies the credentials against the stored bcrypt hash and issues
// a signed token carrying the username and role claims. Unknown username
// and wrong password are indistinguishable to the client.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		logger.Error("login: user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	if user == nil || !service.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user.Username, user.Role)
	if err != nil {
		logger.Error("login: token issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user.Response()})
}

// PredefinedUsers lists the seeded accounts with plaintext passwords, for
// trying the API out.
func (h *Handler) PredefinedUsers(c *gin.Context) {
	c.JSON(http.StatusOK, domain.SeedUsers)
}
