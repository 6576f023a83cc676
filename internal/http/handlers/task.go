package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"taskmanager/internal/domain"
	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

type TaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// taskID parses the :id path parameter. A non-numeric id is a client error,
// distinct from a well-formed id with no matching row.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), c.Query("title"))
	if err != nil {
		logger.Error("list tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("get task failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title cannot be empty"})
		return
	}

	task := domain.Task{Title: req.Title, Description: req.Description}
	if err := h.Tasks.Create(c.Request.Context(), &task); err != nil {
		logger.Error("create task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title cannot be empty"})
		return
	}

	found, err := h.Tasks.Update(c.Request.Context(), id, req.Title, req.Description)
	if err != nil {
		logger.Error("update task failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	found, err := h.Tasks.Delete(c.Request.Context(), id)
	if err != nil {
		logger.Error("delete task failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
