package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/session"
)

// SessionCookieName is the cookie carrying the session token for browser
// clients. API clients send the same token as a bearer header instead.
const SessionCookieName = "pulse_session"

// SessionAuthMiddleware resolves the session token on every protected
// request and gates routes by role.
type SessionAuthMiddleware struct {
	auth services.AuthService
}

func NewSessionAuthMiddleware(auth services.AuthService) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{auth: auth}
}

// AuthMiddleware returns a Gin middleware that requires a live session. A
// missing, expired or corrupt session yields 401 with a login redirect; it is
// never an internal error.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractSessionToken(c)
		if token == "" {
			unauthorized(c)
			return
		}

		sess, err := sam.auth.CurrentSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				unauthorized(c)
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal server error",
			})
			c.Abort()
			return
		}

		user := sess.User
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)
		c.Set("session_token", token)

		c.Next()
	}
}

// RequireRoleMiddleware checks if user has one of the required roles. A
// logged-in user with the wrong role is redirected to their own landing
// route, not to login.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			unauthorized(c)
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			unauthorized(c)
			return
		}

		for _, requiredRole := range requiredRoles {
			if role == requiredRole {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message:  fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			Redirect: models.RouteForRole(role),
		})
		c.Abort()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Message:  "Not logged in",
		Redirect: models.PathLogin,
	})
	c.Abort()
}

// ExtractSessionToken reads the session token from the Authorization header,
// falling back to the session cookie.
func ExtractSessionToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// GetUserFromContext extracts user from Gin context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	user, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return userModel, nil
}

// GetUserIDFromContext extracts user ID from Gin context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	userRole, exists := c.Get("user_role")
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}
