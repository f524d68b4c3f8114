package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusboard/noticeboard-service/internal/auth"
	"github.com/campusboard/noticeboard-service/internal/services"
	"github.com/campusboard/noticeboard-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	sessionMW   *SessionAuthMiddleware
}

func NewAuthHandler(authService services.AuthService, sessionMW *SessionAuthMiddleware, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		sessionMW:   sessionMW,
	}
}

// Register creates an account and logs it in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "registering user", "username", req.Username)

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "register user")
		return
	}

	if !h.issueSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and establishes a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "login attempt", "username", req.Username)

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "log in")
		return
	}

	if !h.issueSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout revokes the server-side session and clears the cookie. It is
// idempotent: a request without a valid session still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		if err := h.sessionMW.Sessions().Revoke(c.Request.Context(), cookie); err != nil {
			h.LogError(c, err, "failed to revoke session")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to log out"})
			return
		}
	}

	h.sessionMW.ClearSessionCookie(c)
	c.Status(http.StatusOK)
}

// CurrentUser returns the authenticated account behind the session.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueSession(c *gin.Context, userID uint) bool {
	cookie, err := h.sessionMW.Sessions().Issue(c.Request.Context(), userID, auth.SessionMetadata{
		UserAgent: c.Request.UserAgent(),
		RemoteIP:  c.ClientIP(),
	})
	if err != nil {
		h.LogError(c, err, "failed to issue session", "user_id", userID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to establish session"})
		return false
	}

	h.sessionMW.SetSessionCookie(c, cookie)
	return true
}
