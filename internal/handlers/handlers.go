package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/casino-admin/internal/auth"
	"github.com/example/casino-admin/internal/usecase"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Options toggles routes that depend on deployment settings.
type Options struct {
	EnableSampleData bool
	Logger           *zap.Logger
}

type handler struct {
	uc     *usecase.AdminUseCase
	opts   Options
	logger *zap.Logger
}

// RegisterRoutes wires the HTTP handlers to the Gin router. Everything under
// /api except health and the sample data loader runs behind authMiddleware.
func RegisterRoutes(router *gin.Engine, uc *usecase.AdminUseCase, authMiddleware gin.HandlerFunc, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{uc: uc, opts: opts, logger: logger.Named("handlers")}

	api := router.Group("/api")
	api.GET("/health", h.health)
	api.POST("/init/sample-data", h.loadSampleData)

	secured := api.Group("", authMiddleware)
	secured.GET("/auth/me", h.me)
	secured.GET("/dashboard/metrics", h.dashboardMetrics)

	secured.GET("/members", h.listMembers)
	secured.GET("/members/:id", h.getMember)

	gaming := secured.Group("/gaming")
	gaming.GET("/sessions", h.listGamingSessions)
	gaming.GET("/packages", h.listGamingPackages)
	gaming.POST("/packages", auth.Require(auth.OpCreateGamingPackage), h.createGamingPackage)
	secured.GET("/rewards", h.listRewards)

	marketing := secured.Group("/marketing")
	marketing.GET("/dashboard", h.marketingDashboard)
	marketing.GET("/birthday-calendar", h.listBirthdayCalendar)
	marketing.GET("/inactive-customers", h.listInactiveCustomers)
	marketing.GET("/walk-in-guests", h.listWalkInGuests)
	marketing.GET("/campaigns", h.listCampaigns)
	marketing.POST("/campaigns", auth.Require(auth.OpCreateCampaign), h.createCampaign)

	travel := secured.Group("/travel")
	travel.GET("/vip-dashboard", h.vipDashboard)
	travel.GET("/vip-experiences", h.listVIPExperiences)
	travel.POST("/vip-experiences", auth.Require(auth.OpCreateVIPExperience), h.createVIPExperience)
	travel.GET("/group-bookings", h.listGroupBookings)
	travel.POST("/group-bookings", auth.Require(auth.OpCreateGroupBooking), h.createGroupBooking)

	staff := secured.Group("/staff")
	staff.GET("/dashboard", h.staffDashboard)
	staff.GET("/members", h.listStaff)
	staff.GET("/training/courses", h.listTrainingCourses)
	staff.POST("/training/courses", auth.Require(auth.OpCreateTrainingCourse), h.createTrainingCourse)
	staff.GET("/training/records", h.listTrainingRecords)
	staff.POST("/performance/reviews", auth.Require(auth.OpCreatePerformanceReview), h.createPerformanceReview)

	secured.GET("/analytics/advanced", h.listAnalyticsReports)
	secured.POST("/analytics/generate", auth.Require(auth.OpGenerateAnalytics), h.generateAnalytics)

	secured.GET("/compliance/reports", auth.Require(auth.OpViewCompliance), h.listComplianceReports)
	secured.POST("/compliance/reports/generate", auth.Require(auth.OpGenerateCompliance), h.generateCompliance)
	secured.GET("/audit/enhanced", auth.Require(auth.OpViewAuditTrail), h.auditTrail)

	notifications := secured.Group("/notifications")
	notifications.GET("", h.listNotifications)
	notifications.POST("", auth.Require(auth.OpCreateNotification), h.createNotification)
	notifications.PATCH("/:id/read", h.markNotificationRead)
	notifications.GET("/templates", h.listNotificationTemplates)
	notifications.POST("/templates", auth.Require(auth.OpCreateTemplate), h.createNotificationTemplate)

	integrations := secured.Group("/integrations", auth.Require(auth.OpManageIntegrations))
	integrations.GET("", h.listIntegrations)
	integrations.POST("", h.createIntegration)
	integrations.PATCH("/:id/sync", h.syncIntegration)

	retention := secured.Group("/data-retention/policies", auth.Require(auth.OpManageRetentionPolicies))
	retention.GET("", h.listRetentionPolicies)
	retention.POST("", h.createRetentionPolicy)
}

func (h *handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.uc.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "timestamp": time.Now().UTC(), "version": Version})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC(), "version": Version})
}

func (h *handler) loadSampleData(c *gin.Context) {
	if !h.opts.EnableSampleData {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	counts, err := h.uc.LoadSampleData(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sample data initialized successfully", "counts": counts})
}

func (h *handler) me(c *gin.Context) {
	id, _ := auth.IdentityFrom(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"id":          id.UserID,
		"username":    id.Username,
		"role":        id.Role,
		"permissions": auth.PermissionsFor(id.Role),
	})
}
