package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetEmployeeDashboard returns the caller's employee dashboard
// @Summary Employee dashboard
// @Description Own profile, matches and office days for the logged-in employee
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.EmployeeDashboard
// @Failure 404 {object} ErrorResponse "No profile yet"
// @Router /dashboard/employee [get]
func (h *DashboardHandler) GetEmployeeDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting employee dashboard")

	user, err := GetUserFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	dashboard, err := h.service.Employee(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetManagerDashboard returns team presence and match statistics
// @Summary Manager dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.ManagerDashboard
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /dashboard/manager [get]
func (h *DashboardHandler) GetManagerDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting manager dashboard")

	dashboard, err := h.service.Manager(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetHRDashboard returns presence, hosting and match statistics
// @Summary HR dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.HRDashboard
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /dashboard/hr [get]
func (h *DashboardHandler) GetHRDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting HR dashboard")

	dashboard, err := h.service.HR(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetOfficeDashboard returns presence and hosting per city
// @Summary Office manager dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.OfficeDashboard
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /dashboard/office [get]
func (h *DashboardHandler) GetOfficeDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting office dashboard")

	dashboard, err := h.service.Office(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ExportHRReport downloads the HR report workbook
// @Summary Export HR report
// @Description Download profiles, presence and hosting as an xlsx workbook
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /dashboard/hr/export [get]
func (h *DashboardHandler) ExportHRReport(c *gin.Context) {
	h.LogRequest(c, "Exporting HR report")

	data, err := h.service.ExportHRReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("pulse-report-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
