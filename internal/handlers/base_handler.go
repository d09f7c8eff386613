package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/session"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
	"github.com/jungle-hr/pulse-match-service/internal/validator"
)

// ErrorResponse is the JSON error body for all handlers.
type ErrorResponse struct {
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// BaseHandler carries the shared handler dependencies.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	h.requestLogger(c).Info(msg, "method", c.Request.Method, "path", c.Request.URL.Path)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	h.requestLogger(c).Error(msg, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
}

func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.LoggerFromContext(c.Request.Context(), h.logger)
}

// handleServiceError maps service errors to HTTP status codes. Shared by
// every domain handler.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: verrs,
		})
	case errors.Is(err, session.ErrNoSession):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message:  "Not logged in",
			Redirect: "/login",
		})
	case errors.Is(err, repositories.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid email or password",
		})
	case services.IsPermissionError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	case services.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Not found",
		})
	case errors.Is(err, services.ErrProfileExists):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Profile already exists",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Match already answered",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
