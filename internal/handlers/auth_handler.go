package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login authenticates a user and opens a session
// @Summary Log in
// @Description Verify credentials, open a session and return the landing route for the user's role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse "Bad request - malformed body"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Login attempt")

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// Browser clients ride on the cookie; API clients use the token field.
	c.SetCookie(SessionCookieName, resp.Token, 0, "/", "", false, true)

	c.JSON(http.StatusOK, resp)
}

// Logout closes the current session
// @Summary Log out
// @Description Clear the session slot. Safe to call without a session.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logout")

	token := ExtractSessionToken(c)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"redirect": "/login"})
}

// Session returns the current session
// @Summary Current session
// @Description Resolve the session token to its user and landing route
// @Tags auth
// @Produce json
// @Success 200 {object} services.SessionResponse
// @Failure 401 {object} ErrorResponse "No session"
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	token := ExtractSessionToken(c)
	if token == "" {
		unauthorized(c)
		return
	}

	resp, err := h.service.CurrentSession(c.Request.Context(), token)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
