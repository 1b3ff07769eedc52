package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TaskHive-441/go-task-backend/internal/auth"
	projectdomain "github.com/TaskHive-441/go-task-backend/internal/projects/domain"
	"github.com/TaskHive-441/go-task-backend/internal/tasks/domain"
	"github.com/TaskHive-441/go-task-backend/internal/tasks/service"
)

type Handler struct {
	tasks *service.TaskService
}

func NewHandler(tasks *service.TaskService) *Handler {
	return &Handler{tasks: tasks}
}

func (h *Handler) create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.CreateTask{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
	}
	var err error
	if in.DueDate, err = parseDate("due_date", req.DueDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), auth.UserID(c), projectID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": toTaskResp(t)})
}

func (h *Handler) listByProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.tasks.ListByProject(c.Request.Context(), auth.UserID(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]taskResp, 0, len(items))
	for i := range items {
		out = append(out, toTaskResp(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": out})
}

func (h *Handler) get(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	t, err := h.tasks.GetByID(c.Request.Context(), auth.UserID(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": toTaskResp(t)})
}

func (h *Handler) update(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.UpdateTask{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	}
	var err error
	if in.DueDate, err = parseDate("due_date", req.DueDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	t, err := h.tasks.UpdateByID(c.Request.Context(), auth.UserID(c), taskID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": toTaskResp(t)})
}

func (h *Handler) delete(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	if err := h.tasks.DeleteByID(c.Request.Context(), auth.UserID(c), taskID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) addComment(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	comment, err := h.tasks.AddComment(c.Request.Context(), auth.UserID(c), taskID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "comment": comment})
}

func (h *Handler) listComments(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	comments, err := h.tasks.ListComments(c.Request.Context(), auth.UserID(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "comments": comments})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var invalidPriority *domain.InvalidPriorityError
	var invalidStatus *domain.InvalidStatusError

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, projectdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, projectdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &invalidPriority), errors.As(err, &invalidStatus),
		errors.Is(err, domain.ErrAssigneeNotInProject):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
