package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/usecase"
)

func (h *handler) listMembers(c *gin.Context) {
	var q struct {
		pagination.Query
		Tier   string `form:"tier"`
		Search string `form:"search"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.MemberFilter{Tier: q.Tier, Search: q.Search}
	res, err := h.uc.ListMembers(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "members", res)
}

func (h *handler) getMember(c *gin.Context) {
	member, err := h.uc.GetMember(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *handler) listGamingSessions(c *gin.Context) {
	var q struct {
		pagination.Query
		Status string `form:"status"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListGamingSessions(c.Request.Context(), q.Status, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "sessions", res)
}

func (h *handler) listGamingPackages(c *gin.Context) {
	var q pagination.Query
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListGamingPackages(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "packages", res)
}

func (h *handler) createGamingPackage(c *gin.Context) {
	var pkg model.GamingPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateGamingPackage(c.Request.Context(), actorFrom(c), pkg)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Gaming package created successfully")
}

func (h *handler) listRewards(c *gin.Context) {
	var q struct {
		pagination.Query
		Category string `form:"category"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListRewards(c.Request.Context(), q.Category, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "rewards", res)
}

func (h *handler) listBirthdayCalendar(c *gin.Context) {
	var q struct {
		pagination.Query
		Month int `form:"month" binding:"min=0,max=12"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListBirthdayCalendar(c.Request.Context(), q.Month, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "birthdays", res)
}

func (h *handler) listInactiveCustomers(c *gin.Context) {
	var q struct {
		pagination.Query
		Days int `form:"days,default=30" binding:"min=1"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListInactiveCustomers(c.Request.Context(), q.Days, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "inactive_members", res)
}

func (h *handler) listWalkInGuests(c *gin.Context) {
	var q struct {
		pagination.Query
		Date string `form:"date"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListWalkInGuests(c.Request.Context(), q.Date, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "guests", res)
}

func (h *handler) listCampaigns(c *gin.Context) {
	var q struct {
		pagination.Query
		Status       string `form:"status"`
		CampaignType string `form:"campaign_type"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.CampaignFilter{Status: q.Status, CampaignType: q.CampaignType}
	res, err := h.uc.ListCampaigns(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "campaigns", res)
}

func (h *handler) createCampaign(c *gin.Context) {
	var campaign model.MarketingCampaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateCampaign(c.Request.Context(), actorFrom(c), campaign)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Marketing campaign created successfully")
}

func (h *handler) listVIPExperiences(c *gin.Context) {
	var q struct {
		pagination.Query
		Status string `form:"status"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListVIPExperiences(c.Request.Context(), q.Status, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "experiences", res)
}

func (h *handler) createVIPExperience(c *gin.Context) {
	var exp model.VIPExperience
	if err := c.ShouldBindJSON(&exp); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateVIPExperience(c.Request.Context(), actorFrom(c), exp)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "VIP experience created successfully")
}

func (h *handler) listGroupBookings(c *gin.Context) {
	var q struct {
		pagination.Query
		Status string `form:"status"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListGroupBookings(c.Request.Context(), q.Status, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "bookings", res)
}

func (h *handler) createGroupBooking(c *gin.Context) {
	var booking model.GroupBooking
	if err := c.ShouldBindJSON(&booking); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateGroupBooking(c.Request.Context(), actorFrom(c), booking)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Group booking created successfully")
}

func (h *handler) listStaff(c *gin.Context) {
	var q struct {
		pagination.Query
		Department string `form:"department"`
		Search     string `form:"search"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.StaffFilter{Department: q.Department, Search: q.Search}
	res, err := h.uc.ListStaff(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "staff", res)
}

func (h *handler) listTrainingCourses(c *gin.Context) {
	var q struct {
		pagination.Query
		Category string `form:"category"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListTrainingCourses(c.Request.Context(), q.Category, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "courses", res)
}

func (h *handler) createTrainingCourse(c *gin.Context) {
	var course model.TrainingCourse
	if err := c.ShouldBindJSON(&course); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateTrainingCourse(c.Request.Context(), actorFrom(c), course)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Training course created successfully")
}

func (h *handler) listTrainingRecords(c *gin.Context) {
	var q struct {
		pagination.Query
		StaffID  string `form:"staff_id"`
		CourseID string `form:"course_id"`
		Status   string `form:"status"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.TrainingRecordFilter{
		StaffID:  q.StaffID,
		CourseID: q.CourseID,
		Status:   q.Status,
	}
	res, err := h.uc.ListTrainingRecords(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "records", res)
}

func (h *handler) createPerformanceReview(c *gin.Context) {
	var review model.PerformanceReview
	if err := c.ShouldBindJSON(&review); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreatePerformanceReview(c.Request.Context(), actorFrom(c), review)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Performance review created successfully")
}

func (h *handler) listNotifications(c *gin.Context) {
	var q struct {
		pagination.Query
		Status   string `form:"status"`
		Category string `form:"category"`
		Priority string `form:"priority"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.NotificationFilter{
		Status:   q.Status,
		Category: q.Category,
		Priority: q.Priority,
	}
	res, err := h.uc.ListNotifications(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "notifications", res)
}

func (h *handler) createNotification(c *gin.Context) {
	var n model.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateNotification(c.Request.Context(), actorFrom(c), n)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Notification sent successfully")
}

func (h *handler) markNotificationRead(c *gin.Context) {
	if err := h.uc.MarkNotificationRead(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *handler) listNotificationTemplates(c *gin.Context) {
	var q struct {
		pagination.Query
		Category string `form:"category"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	res, err := h.uc.ListNotificationTemplates(c.Request.Context(), q.Category, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "templates", res)
}

func (h *handler) createNotificationTemplate(c *gin.Context) {
	var t model.NotificationTemplate
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateNotificationTemplate(c.Request.Context(), actorFrom(c), t)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Notification template created successfully")
}

func (h *handler) listIntegrations(c *gin.Context) {
	var q struct {
		pagination.Query
		Status string `form:"status"`
		Type   string `form:"type"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.IntegrationFilter{Status: q.Status, Type: q.Type}
	res, err := h.uc.ListIntegrations(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "integrations", res)
}

func (h *handler) createIntegration(c *gin.Context) {
	var in model.SystemIntegration
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateIntegration(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Integration created successfully")
}

func (h *handler) syncIntegration(c *gin.Context) {
	if err := h.uc.SyncIntegration(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Integration sync completed"})
}

func (h *handler) listRetentionPolicies(c *gin.Context) {
	var q struct {
		pagination.Query
		Status       string `form:"status"`
		DataCategory string `form:"data_category"`
	}
	p, ok := bindPaged(c, &q)
	if !ok {
		return
	}
	f := usecase.RetentionFilter{Status: q.Status, DataCategory: q.DataCategory}
	res, err := h.uc.ListRetentionPolicies(c.Request.Context(), f, p)
	if err != nil {
		respondError(c, err)
		return
	}
	listResponse(c, "policies", res)
}

func (h *handler) createRetentionPolicy(c *gin.Context) {
	var pol model.DataRetentionPolicy
	if err := c.ShouldBindJSON(&pol); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.uc.CreateRetentionPolicy(c.Request.Context(), actorFrom(c), pol)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, id, "Data retention policy created successfully")
}
