package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/repositories"
	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
)

type MatchHandler struct {
	BaseHandler
	service services.MatchService
}

func NewMatchHandler(service services.MatchService, logger utils.Logger) *MatchHandler {
	return &MatchHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SuggestMatches computes new suggestions for the caller
// @Summary Suggest matches
// @Description Compute and persist new match suggestions for the caller's profile
// @Tags matches
// @Produce json
// @Success 200 {object} services.MatchListResponse
// @Failure 404 {object} ErrorResponse "No profile yet"
// @Router /matches/suggest [post]
func (h *MatchHandler) SuggestMatches(c *gin.Context) {
	h.LogRequest(c, "Computing match suggestions")

	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	resp, err := h.service.Suggest(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMatches lists the caller's matches
// @Summary List matches
// @Tags matches
// @Produce json
// @Param status query string false "Filter by status: suggested, accepted, declined"
// @Param limit query int false "Page size"
// @Success 200 {object} services.MatchListResponse
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	var filters repositories.MatchFilters
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		filters.Status = &status
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	resp, err := h.service.ListByUser(c.Request.Context(), user, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RespondToMatch accepts or declines a suggested match
// @Summary Respond to a match
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param request body services.MatchStatusRequest true "accepted or declined"
// @Success 200 {object} services.MatchResponse
// @Failure 403 {object} ErrorResponse "Not a participant"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Already answered"
// @Router /matches/{id}/status [put]
func (h *MatchHandler) RespondToMatch(c *gin.Context) {
	h.LogRequest(c, "Responding to match")

	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid match ID",
		})
		return
	}

	var req services.MatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Respond(c.Request.Context(), uint(matchID), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMatchStats returns aggregate match counts
// @Summary Match statistics
// @Tags matches
// @Produce json
// @Success 200 {object} repositories.MatchStats
// @Router /matches/stats [get]
func (h *MatchHandler) GetMatchStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
