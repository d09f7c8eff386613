package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateProfile creates the caller's profile
// @Summary Create profile
// @Description Create the office profile for the logged-in user
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body services.CreateProfileRequest true "Profile attributes"
// @Success 201 {object} services.ProfileResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Profile already exists"
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	h.LogRequest(c, "Creating profile")

	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req services.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetMyProfile returns the caller's profile
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Success 200 {object} services.ProfileResponse
// @Failure 404 {object} ErrorResponse "No profile yet"
// @Router /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	resp, err := h.service.GetByUserID(c.Request.Context(), user.ID, user.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile returns another user's profile
// @Summary Get profile by user ID
// @Tags profiles
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} services.ProfileResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /profiles/{user_id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	requesterID, err := GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	resp, err := h.service.GetByUserID(c.Request.Context(), c.Param("user_id"), requesterID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMyProfile updates the caller's profile
// @Summary Update own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body services.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} services.ProfileResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "No profile yet"
// @Router /profiles/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	h.LogRequest(c, "Updating profile")

	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProfile removes a profile
// @Summary Delete profile
// @Description Owners can delete their own profile; HR can delete any
// @Tags profiles
// @Produce json
// @Param user_id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /profiles/{user_id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	h.LogRequest(c, "Deleting profile")

	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("user_id"), user); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProfiles lists profiles with filters
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Param role query string false "Filter by role"
// @Param city query string false "Filter by city"
// @Param office_day query string false "Filter by office day"
// @Param hosting query bool false "Only hosts"
// @Param q query string false "Name or email search"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} services.ProfileListResponse
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	requesterID, err := GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var req services.ProfileListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.List(c.Request.Context(), &req, requesterID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
