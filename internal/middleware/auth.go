package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitrail/habit-tracker-api/internal/constants"
	apierrors "github.com/habitrail/habit-tracker-api/internal/errors"
	"github.com/habitrail/habit-tracker-api/internal/services"
)

// RequireAuth validates the Bearer token and stores the user id in context.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Authorization header is missing")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			apierrors.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			apierrors.Unauthorized(c, "Token is missing")
			c.Abort()
			return
		}

		userID, err := authService.VerifyAccessToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireSelf ensures the :userId path parameter names the authenticated
// user. Habit data is strictly per-user; there is no cross-user access.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		authUserID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		pathUserID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user id")
			c.Abort()
			return
		}

		if pathUserID != authUserID {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}
