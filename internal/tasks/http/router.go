package http

import "github.com/gin-gonic/gin"

// RegisterProjectSubroutes attaches the task routes that hang off a
// project, RegisterTaskRoutes the ones addressed by task id.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:id/tasks", h.create)
	rg.GET("/:id/tasks", h.listByProject)
}

func (h *Handler) RegisterTaskRoutes(rg *gin.RouterGroup) {
	rg.GET("/:taskId", h.get)
	rg.PUT("/:taskId", h.update)
	rg.DELETE("/:taskId", h.delete)
	rg.POST("/:taskId/comments", h.addComment)
	rg.GET("/:taskId/comments", h.listComments)
}
