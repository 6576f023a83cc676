package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// Validation failures reject the request before any store access, so these
// run against a handler with no database behind it.
func validationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("test-secret", "task-manager", "task-manager-clients")
	h := NewHandler(nil, tokens)

	r := gin.New()
	r.GET("/tasks/:id", h.GetTask)
	r.POST("/tasks", h.CreateTask)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.DELETE("/tasks/:id", h.DeleteTask)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskIDMustBeNumeric(t *testing.T) {
	r := validationRouter()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		if w := do(t, r, method, "/tasks/abc", ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s /tasks/abc: got %d, want 400", method, w.Code)
		}
	}
	if w := do(t, r, http.MethodPut, "/tasks/abc", `{"title":"x"}`); w.Code != http.StatusBadRequest {
		t.Errorf("PUT /tasks/abc: got %d, want 400", w.Code)
	}
}

func TestCreateTaskRejectsBlankTitle(t *testing.T) {
	r := validationRouter()

	for _, body := range []string{
		`{"title":""}`,
		`{"title":"   "}`,
		`{"title":"\t\n"}`,
		`{"description":"no title at all"}`,
	} {
		if w := do(t, r, http.MethodPost, "/tasks", body); w.Code != http.StatusBadRequest {
			t.Errorf("POST %s: got %d, want 400", body, w.Code)
		}
	}
}

func TestCreateTaskRejectsBadJSON(t *testing.T) {
	r := validationRouter()

	if w := do(t, r, http.MethodPost, "/tasks", `{not json`); w.Code != http.StatusBadRequest {
		t.Errorf("bad json: got %d, want 400", w.Code)
	}
}

func TestUpdateTaskRejectsBlankTitle(t *testing.T) {
	r := validationRouter()

	if w := do(t, r, http.MethodPut, "/tasks/1", `{"title":"  "}`); w.Code != http.StatusBadRequest {
		t.Errorf("blank title: got %d, want 400", w.Code)
	}
}
