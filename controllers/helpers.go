package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillup-labs/skillup/middleware"
	"github.com/skillup-labs/skillup/models"
)

// getUserID extracts the authenticated user id placed into the context by the
// auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// sanitizeUserResponse strips credentials from a user payload.
func sanitizeUserResponse(user models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"provider":   user.Provider,
		"xp":         user.XP,
		"level":      user.Level,
		"badges":     user.BadgeIDs(),
		"created_at": user.CreatedAt,
	}
}
