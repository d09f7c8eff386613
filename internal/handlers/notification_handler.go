package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// NotifyMatch announces a match to its participants
// @Summary Send a match notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body services.NotifyMatchRequest true "Match announcement"
// @Success 200 {object} services.NotifyMatchResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /notifications/match [post]
func (h *NotificationHandler) NotifyMatch(c *gin.Context) {
	h.LogRequest(c, "Sending match notification")

	var req services.NotifyMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.NotifyMatch(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendReminders queues office day reminders
// @Summary Send office day reminders
// @Description Publish reminder events for everyone present on the given weekday
// @Tags notifications
// @Produce json
// @Param day path string true "Weekday identifier (monday..friday)"
// @Success 200 {object} map[string]int
// @Failure 400 {object} ErrorResponse "Unknown weekday"
// @Router /notifications/reminders/{day} [post]
func (h *NotificationHandler) SendReminders(c *gin.Context) {
	h.LogRequest(c, "Sending office day reminders")

	day := c.Param("day")
	valid := false
	for _, d := range models.OfficeDays {
		if d == day {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unknown weekday",
			Details: "day must be one of monday..friday",
		})
		return
	}

	count, err := h.service.SendOfficeDayReminders(c.Request.Context(), day)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminded": count})
}
