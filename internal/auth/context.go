package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	CtxAuthUID = "auth_uid"
	CtxUserID  = "user_id"
)

// UserID extracts the resolved local user id from the Gin context.
// It is set by WithUser; zero means unauthenticated.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}
