package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/models"
	"github.com/campusboard/noticeboard-service/internal/services"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "noticeboard_session"

// SessionAuthMiddleware authenticates requests from the session cookie.
// The user row is re-fetched on every request so role changes and
// deletions take effect immediately, not at next login.
type SessionAuthMiddleware struct {
	sessions     *auth.Manager
	users        services.UserService
	secureCookie bool
}

func NewSessionAuthMiddleware(sessions *auth.Manager, users services.UserService, secureCookie bool) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions:     sessions,
		users:        users,
		secureCookie: secureCookie,
	}
}

// SetSessionCookie writes the signed session value with the configured
// lifetime. SameSite=Lax keeps the cookie off cross-site POSTs.
func (sam *SessionAuthMiddleware) SetSessionCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, int(sam.sessions.TTL().Seconds()), "/", "", sam.secureCookie, true)
}

// ClearSessionCookie expires the cookie on the client.
func (sam *SessionAuthMiddleware) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", sam.secureCookie, true)
}

// Sessions exposes the manager for the auth handler's issue/revoke calls.
func (sam *SessionAuthMiddleware) Sessions() *auth.Manager {
	return sam.sessions
}

// AuthMiddleware rejects requests without a live session.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			c.Abort()
			return
		}

		session, err := sam.sessions.Resolve(c.Request.Context(), cookie)
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			} else {
				c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to resolve session"})
			}
			c.Abort()
			return
		}

		user, err := sam.users.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			// The account was deleted after login; the session is dead.
			if errors.Is(err, services.ErrUserNotFound) {
				_ = sam.sessions.Revoke(c.Request.Context(), cookie)
				c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			} else {
				c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to load user"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)

		c.Next()
	}
}

// RequireRoleMiddleware allows only the listed roles past. Unlike role
// checks that imply admin, the allow list is literal; routes that admit
// admins name the role explicitly.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			c.Abort()
			return
		}

		role, ok := userRole.(models.Role)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "insufficient permissions"})
			c.Abort()
			return
		}

		for _, candidate := range allowed {
			if role == candidate {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{Message: "insufficient permissions"})
		c.Abort()
	}
}

// GetUserFromContext extracts the authenticated user set by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return user, nil
}
