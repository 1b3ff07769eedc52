package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TaskHive-441/go-task-backend/internal/users/repository"
	"github.com/TaskHive-441/go-task-backend/internal/users/service"
)

// WithUser resolves the authenticated identity to a local user row and
// stores its numeric id in the request context. The auth uid comes from
// the firebase middleware when configured, otherwise from the X-User-Id
// header (local development).
func WithUser(usersSvc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetString(CtxAuthUID))
		if uid == "" {
			uid = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthenticated"})
			c.Abort()
			return
		}

		user, err := usersSvc.EnsureUser(c.Request.Context(), repository.UpsertUser{
			AuthUID:   uid,
			Email:     c.GetString("email"),
			NickName:  c.GetHeader("X-User-Name"),
			FirstName: c.GetHeader("X-User-First-Name"),
			LastName:  c.GetHeader("X-User-Last-Name"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxAuthUID, uid)
		c.Set(CtxUserID, user.ID)
		c.Next()
	}
}
