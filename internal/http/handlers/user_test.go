package handlers

import (
	"net/http"
	"testing"

	"taskmanager/internal/domain"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// adminRouter wires the user admin handlers behind a stub identity, for
// exercising the pre-store validation paths without a database.
func adminRouter(username string, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("test-secret", "task-manager", "task-manager-clients")
	h := NewHandler(nil, tokens)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUsername, username)
		c.Set(middleware.CtxRole, role)
	})
	r.GET("/users/role/:role", h.ListUsersByRole)
	r.DELETE("/users/:username", h.DeleteUser)
	r.PUT("/users/me", h.UpdateProfile)
	return r
}

func TestListUsersByRoleRejectsUnknownRole(t *testing.T) {
	r := adminRouter("admin", domain.RoleAdmin)

	if w := do(t, r, http.MethodGet, "/users/role/superuser", ""); w.Code != http.StatusBadRequest {
		t.Errorf("unknown role: got %d, want 400", w.Code)
	}
}

func TestDeleteUserForbidsSelfDeletion(t *testing.T) {
	r := adminRouter("admin", domain.RoleAdmin)

	w := do(t, r, http.MethodDelete, "/users/admin", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("self-delete: got %d, want 400", w.Code)
	}
}

func TestUpdateProfileRejectsEmptyBody(t *testing.T) {
	r := adminRouter("user1", domain.RoleUser)

	if w := do(t, r, http.MethodPut, "/users/me", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty update: got %d, want 400", w.Code)
	}
	if w := do(t, r, http.MethodPut, "/users/me", `{"username":""}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank username: got %d, want 400", w.Code)
	}
	if w := do(t, r, http.MethodPut, "/users/me", `{"password":""}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank password: got %d, want 400", w.Code)
	}
}
