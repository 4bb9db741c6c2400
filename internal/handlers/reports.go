package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/usecase"
)

func (h *handler) dashboardMetrics(c *gin.Context) {
	out, err := h.uc.DashboardMetrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) marketingDashboard(c *gin.Context) {
	out, err := h.uc.MarketingDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) vipDashboard(c *gin.Context) {
	out, err := h.uc.VIPDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) staffDashboard(c *gin.Context) {
	out, err := h.uc.StaffDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) auditTrail(c *gin.Context) {
	var q struct {
		pagination.Query
		Action      string `form:"action"`
		Resource    string `form:"resource"`
		AdminUserID string `form:"admin_user_id"`
		RiskLevel   string `form:"risk_level"`
		StartDate   string `form:"start_date"`
		EndDate     string `form:"end_date"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	start, _, err := parseOptionalTime("start_date", q.StartDate, false)
	if err != nil {
		respondError(c, err)
		return
	}
	end, endExclusive, err := parseOptionalTime("end_date", q.EndDate, true)
	if err != nil {
		respondError(c, err)
		return
	}
	f := usecase.AuditFilter{
		Action:       q.Action,
		Resource:     q.Resource,
		AdminUserID:  q.AdminUserID,
		RiskLevel:    q.RiskLevel,
		Start:        start,
		End:          end,
		EndExclusive: endExclusive,
	}
	trail, err := h.uc.EnhancedAuditTrail(c.Request.Context(), actorFrom(c), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"audit_logs": trail.Items,
		"total":      trail.Total,
		"page":       trail.Page.Page,
		"pages":      trail.Page.Pages,
		"summary":    trail.Summary,
	})
}

func (h *handler) generateCompliance(c *gin.Context) {
	var req usecase.ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	report, err := h.uc.GenerateComplianceReport(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handler) listComplianceReports(c *gin.Context) {
	var q struct {
		pagination.Query
		ReportType string `form:"report_type"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListComplianceReports(c.Request.Context(), q.ReportType, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "reports", res)
}

func (h *handler) generateAnalytics(c *gin.Context) {
	var req usecase.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	report, err := h.uc.GenerateAnalyticsReport(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handler) listAnalyticsReports(c *gin.Context) {
	var q struct {
		pagination.Query
		AnalysisType string `form:"analysis_type"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListAnalyticsReports(c.Request.Context(), q.AnalysisType, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "reports", res)
}
