package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TaskHive-441/go-task-backend/internal/auth"
	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
	"github.com/TaskHive-441/go-task-backend/internal/projects/service"
	usersservice "github.com/TaskHive-441/go-task-backend/internal/users/service"
)

type Handler struct {
	projects *service.ProjectService
	users    *usersservice.UserService
}

func NewHandler(projects *service.ProjectService, users *usersservice.UserService) *Handler {
	return &Handler{projects: projects, users: users}
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.CreateProject{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	}
	var err error
	if in.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if in.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	p, err := h.projects.Create(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": toProjectResp(p)})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.projects.GetByUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]projectResp, 0, len(items))
	for i := range items {
		out = append(out, toProjectResp(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": out})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.projects.GetByID(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := toProjectResp(p)
	if members, err := h.users.FindByIDs(c.Request.Context(), p.MemberIDs); err == nil {
		resp.Members = toMemberResps(members)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": resp})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.UpdateProject{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	var err error
	if in.StartDate, err = parseDate("start_date", req.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if in.EndDate, err = parseDate("end_date", req.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	p, err := h.projects.UpdateByID(c.Request.Context(), auth.UserID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectResp(p)})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.projects.DeleteByID(c.Request.Context(), auth.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) addMembers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req membersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.AddMembers(c.Request.Context(), auth.UserID(c), id, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectResp(p)})
}

func (h *Handler) deleteMembers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req membersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.projects.DeleteMembers(c.Request.Context(), auth.UserID(c), id, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectResp(p)})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return 0, false
	}
	return id, true
}

// respondError maps the engine's error surface to transport status codes.
func respondError(c *gin.Context, err error) {
	var invalidMembers *domain.InvalidMembersError
	var invalidStatus *domain.InvalidStatusError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &invalidMembers):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error(), "invalid_ids": invalidMembers.IDs})
	case errors.As(err, &invalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
