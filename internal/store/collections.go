package store

import (
	"context"

	"github.com/example/casino-admin/internal/model"
)

// Collection names as stored in the database.
const (
	MembersCollection               = "members"
	GamingSessionsCollection        = "gaming_sessions"
	GamingPackagesCollection        = "gaming_packages"
	RewardsCollection               = "rewards"
	AuditLogsCollection             = "audit_logs"
	MarketingCampaignsCollection    = "marketing_campaigns"
	CustomerAnalyticsCollection     = "customer_analytics"
	WalkInGuestsCollection          = "walk_in_guests"
	BirthdayCalendarCollection      = "birthday_calendar"
	VIPExperiencesCollection        = "vip_experiences"
	GroupBookingsCollection         = "group_bookings"
	StaffCollection                 = "staff"
	TrainingCoursesCollection       = "training_courses"
	TrainingRecordsCollection       = "training_records"
	PerformanceReviewsCollection    = "performance_reviews"
	ComplianceReportsCollection     = "compliance_reports"
	AnalyticsReportsCollection      = "analytics_reports"
	RetentionPoliciesCollection     = "data_retention_policies"
	NotificationsCollection         = "notifications"
	NotificationTemplatesCollection = "notification_templates"
	IntegrationsCollection          = "system_integrations"
)

// Collections exposes one typed collection per entity.
type Collections struct {
	Members               *Collection[model.Member]
	GamingSessions        *Collection[model.GamingSession]
	GamingPackages        *Collection[model.GamingPackage]
	Rewards               *Collection[model.Reward]
	AuditLogs             *Collection[model.AuditLog]
	MarketingCampaigns    *Collection[model.MarketingCampaign]
	CustomerAnalytics     *Collection[model.CustomerAnalytics]
	WalkInGuests          *Collection[model.WalkInGuest]
	BirthdayCalendar      *Collection[model.BirthdayEntry]
	VIPExperiences        *Collection[model.VIPExperience]
	GroupBookings         *Collection[model.GroupBooking]
	Staff                 *Collection[model.StaffMember]
	TrainingCourses       *Collection[model.TrainingCourse]
	TrainingRecords       *Collection[model.TrainingRecord]
	PerformanceReviews    *Collection[model.PerformanceReview]
	ComplianceReports     *Collection[model.ComplianceReport]
	AnalyticsReports      *Collection[model.AnalyticsReport]
	RetentionPolicies     *Collection[model.DataRetentionPolicy]
	Notifications         *Collection[model.Notification]
	NotificationTemplates *Collection[model.NotificationTemplate]
	Integrations          *Collection[model.SystemIntegration]
}

// NewCollections binds every entity collection to backend.
func NewCollections(backend Backend) *Collections {
	return &Collections{
		Members:               NewCollection[model.Member](backend, MembersCollection),
		GamingSessions:        NewCollection[model.GamingSession](backend, GamingSessionsCollection),
		GamingPackages:        NewCollection[model.GamingPackage](backend, GamingPackagesCollection),
		Rewards:               NewCollection[model.Reward](backend, RewardsCollection),
		AuditLogs:             NewCollection[model.AuditLog](backend, AuditLogsCollection),
		MarketingCampaigns:    NewCollection[model.MarketingCampaign](backend, MarketingCampaignsCollection),
		CustomerAnalytics:     NewCollection[model.CustomerAnalytics](backend, CustomerAnalyticsCollection),
		WalkInGuests:          NewCollection[model.WalkInGuest](backend, WalkInGuestsCollection),
		BirthdayCalendar:      NewCollection[model.BirthdayEntry](backend, BirthdayCalendarCollection),
		VIPExperiences:        NewCollection[model.VIPExperience](backend, VIPExperiencesCollection),
		GroupBookings:         NewCollection[model.GroupBooking](backend, GroupBookingsCollection),
		Staff:                 NewCollection[model.StaffMember](backend, StaffCollection),
		TrainingCourses:       NewCollection[model.TrainingCourse](backend, TrainingCoursesCollection),
		TrainingRecords:       NewCollection[model.TrainingRecord](backend, TrainingRecordsCollection),
		PerformanceReviews:    NewCollection[model.PerformanceReview](backend, PerformanceReviewsCollection),
		ComplianceReports:     NewCollection[model.ComplianceReport](backend, ComplianceReportsCollection),
		AnalyticsReports:      NewCollection[model.AnalyticsReport](backend, AnalyticsReportsCollection),
		RetentionPolicies:     NewCollection[model.DataRetentionPolicy](backend, RetentionPoliciesCollection),
		Notifications:         NewCollection[model.Notification](backend, NotificationsCollection),
		NotificationTemplates: NewCollection[model.NotificationTemplate](backend, NotificationTemplatesCollection),
		Integrations:          NewCollection[model.SystemIntegration](backend, IntegrationsCollection),
	}
}

// Ping issues a cheap count against the members collection.
func (c *Collections) Ping(ctx context.Context) error {
	_, err := c.Members.Count(ctx, nil)
	return err
}
