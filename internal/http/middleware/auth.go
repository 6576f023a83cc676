package middleware

import (
	"net/http"
	"strings"

	"taskmanager/internal/domain"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys under which Auth stores the validated token claims.
const (
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth validates the bearer token and stores the username and role claims
// in the request context. Any failure aborts with 401 before role is ever
// inspected; authorization (403) happens later in RequireAdmin.
func Auth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AuthRejected.WithLabelValues("missing_header").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			AuthRejected.WithLabelValues("bad_header").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header format"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			AuthRejected.WithLabelValues("invalid_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the role claim set by Auth is ADMIN.
// It must be registered after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(CtxRole)
		if !ok || role != domain.RoleAdmin {
			AuthRejected.WithLabelValues("not_admin").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Only administrators can access this resource"})
			return
		}
		c.Next()
	}
}

// Identity returns the username and role Auth stored in the context.
func Identity(c *gin.Context) (string, domain.Role, bool) {
	username, ok := c.Get(CtxUsername)
	if !ok {
		return "", "", false
	}
	role, ok := c.Get(CtxRole)
	if !ok {
		return "", "", false
	}
	name, ok1 := username.(string)
	r, ok2 := role.(domain.Role)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return name, r, true
}
