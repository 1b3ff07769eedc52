package http

import "github.com/gin-gonic/gin"

// Register attaches profile routes; RegisterVerification the chat-binding
// routes (the confirm endpoint is called from the messenger side).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.updateMe)
}

func (h *Handler) RegisterVerification(rg *gin.RouterGroup) {
	rg.POST("/tokens", h.issueChatToken)
	rg.GET("/confirm", h.confirmChatToken)
}
