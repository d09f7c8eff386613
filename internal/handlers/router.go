package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jungle-hr/pulse-match-service/internal/models"
	"github.com/jungle-hr/pulse-match-service/internal/services"
	"github.com/jungle-hr/pulse-match-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	profileHandler      *ProfileHandler
	matchHandler        *MatchHandler
	dashboardHandler    *DashboardHandler
	notificationHandler *NotificationHandler
	authMiddleware      *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		profileHandler:      NewProfileHandler(serviceManager.Profile(), logger),
		matchHandler:        NewMatchHandler(serviceManager.Match(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		authMiddleware:      NewSessionAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")

	// Auth routes are public: login opens the session, logout and session
	// lookup degrade gracefully without one.
	auth := v1.Group("/auth")
	{
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/logout", hm.authHandler.Logout)
		auth.GET("/session", hm.authHandler.Session)
	}

	// Everything below requires a live session.
	protected := v1.Group("")
	protected.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Profile routes - all roles can browse, owners write their own
		profiles := protected.Group("/profiles")
		{
			profiles.POST("", hm.profileHandler.CreateProfile)
			profiles.GET("", hm.profileHandler.ListProfiles)
			profiles.GET("/me", hm.profileHandler.GetMyProfile)
			profiles.PUT("/me", hm.profileHandler.UpdateMyProfile)
			profiles.GET("/:user_id", hm.profileHandler.GetProfile)
			profiles.DELETE("/:user_id", hm.profileHandler.DeleteProfile)
		}

		// Match routes
		matches := protected.Group("/matches")
		{
			matches.POST("/suggest", hm.matchHandler.SuggestMatches)
			matches.GET("", hm.matchHandler.ListMatches)
			matches.PUT("/:id/status", hm.matchHandler.RespondToMatch)
			matches.GET("/stats", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager, models.RoleHR), hm.matchHandler.GetMatchStats)
		}

		// Dashboards - one per role
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/employee", hm.authMiddleware.RequireRoleMiddleware(models.RoleEmployee), hm.dashboardHandler.GetEmployeeDashboard)
			dashboard.GET("/manager", hm.authMiddleware.RequireRoleMiddleware(models.RoleManager), hm.dashboardHandler.GetManagerDashboard)
			dashboard.GET("/hr", hm.authMiddleware.RequireRoleMiddleware(models.RoleHR), hm.dashboardHandler.GetHRDashboard)
			dashboard.GET("/hr/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleHR), hm.dashboardHandler.ExportHRReport)
			dashboard.GET("/office", hm.authMiddleware.RequireRoleMiddleware(models.RoleOfficeManager), hm.dashboardHandler.GetOfficeDashboard)
		}

		// Notification routes - office managers and HR trigger announcements
		notifications := protected.Group("/notifications")
		notifications.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleOfficeManager, models.RoleHR))
		{
			notifications.POST("/match", hm.notificationHandler.NotifyMatch)
			notifications.POST("/reminders/:day", hm.notificationHandler.SendReminders)
		}
	}
}

// HealthCheck endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pulse-match-service",
	})
}
