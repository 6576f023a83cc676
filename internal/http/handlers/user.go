package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"taskmanager/internal/domain"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/logger"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// Profile returns the caller's own user record, resolved from the
// username claim. Also served as /me.
func (h *Handler) Profile(c *gin.Context) {
	username, _, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	user, err := h.Users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		logger.Error("profile lookup failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if user == nil {
		// valid token for an account deleted since issuance
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// UpdateProfile lets the caller change their own username and/or password.
// A username change makes outstanding tokens useless, so the response
// carries a freshly issued token.
func (h *Handler) UpdateProfile(c *gin.Context) {
	username, _, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}
	if req.Username == nil && req.Password == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}
	if req.Username != nil && *req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username cannot be empty"})
		return
	}
	if req.Password != nil && *req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password cannot be empty"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		logger.Error("profile update lookup failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var hash *string
	if req.Password != nil {
		hashed, err := service.HashPassword(*req.Password)
		if err != nil {
			logger.Error("password hash failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		hash = &hashed
	}

	found, err := h.Users.UpdateCredentials(ctx, user.ID, req.Username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
			return
		}
		logger.Error("profile update failed", "username", username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	newName := user.Username
	if req.Username != nil {
		newName = *req.Username
	}
	token, err := h.Tokens.Issue(newName, user.Role)
	if err != nil {
		logger.Error("token reissue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  domain.UserResponse{ID: user.ID, Username: newName, Role: user.Role},
	})
}

// ListUsers returns every user. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		logger.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListUsersByRole returns users with the given role. Admin only.
func (h *Handler) ListUsersByRole(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role. Use ADMIN or USER"})
		return
	}

	users, err := h.Users.ListByRole(c.Request.Context(), role)
	if err != nil {
		logger.Error("list users by role failed", "role", role, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user by username. Admin only; admins cannot delete
// their own account.
func (h *Handler) DeleteUser(c *gin.Context) {
	caller, _, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}

	target := c.Param("username")
	if target == caller {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete your own account"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByUsername(ctx, target)
	if err != nil {
		logger.Error("delete user lookup failed", "username", target, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	deleted, err := h.Users.Delete(ctx, user.ID)
	if err != nil || !deleted {
		logger.Error("delete user failed", "username", target, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		return
	}

	logger.Info("user deleted", "username", target, "by", caller)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s deleted successfully", target)})
}
