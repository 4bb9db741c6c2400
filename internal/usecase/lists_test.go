package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

func TestListGamingSessionsPagesAndEnriches(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	require.NoError(t, uc.cols.Members.Insert(ctx, &model.Member{ID: "m1", FirstName: "Ada", LastName: "Lovelace"}))
	sessions := make([]model.GamingSession, 25)
	for i := range sessions {
		memberID := "m1"
		if i%2 == 1 {
			memberID = "deleted-member"
		}
		sessions[i] = model.GamingSession{
			ID:           fmt.Sprintf("s%02d", i),
			MemberID:     memberID,
			SessionStart: wednesdayNoon.Add(-time.Duration(i) * time.Minute),
			Status:       model.SessionActive,
		}
	}
	require.NoError(t, uc.cols.GamingSessions.InsertMany(ctx, sessions))

	got, err := uc.ListGamingSessions(ctx, "", pagination.Params{Skip: 20, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(25), got.Total)
	assert.Equal(t, pagination.Page{Page: 3, Pages: 3}, got.Page)
	require.Len(t, got.Items, 5)
	assert.Equal(t, "s20", got.Items[0].ID)
	assert.Equal(t, "Ada Lovelace", got.Items[0].MemberName)
	assert.Equal(t, "s21", got.Items[1].ID)
	assert.Empty(t, got.Items[1].MemberName)
}

func TestListGamingSessionsEmptyPage(t *testing.T) {
	uc := newTestUseCase(t, nil, wednesdayNoon)

	got, err := uc.ListGamingSessions(context.Background(), model.SessionCompleted, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, int64(0), got.Total)
	assert.Equal(t, pagination.Page{Page: 1, Pages: 0}, got.Page)
}

func TestListGamingSessionsRejectsInvalidPaging(t *testing.T) {
	uc := newTestUseCase(t, nil, wednesdayNoon)

	_, err := uc.ListGamingSessions(context.Background(), "", pagination.Params{Skip: -1, Limit: 10})
	assert.ErrorIs(t, err, pagination.ErrInvalid)
}

func TestListMembersMasksIdentityAndSearches(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.Members.InsertMany(ctx, []model.Member{
		{ID: "m1", MemberNumber: "CC000002", FirstName: "Ada", LastName: "Lovelace", NICPassport: "N1234567", Tier: model.TierVIP, IsActive: true},
		{ID: "m2", MemberNumber: "CC000001", FirstName: "Grace", LastName: "Hopper", NICPassport: "N7654321", Tier: model.TierRuby, IsActive: true},
		{ID: "m3", MemberNumber: "CC000003", FirstName: "Alan", LastName: "Turing", Tier: model.TierVIP, IsActive: false},
	}))

	got, err := uc.ListMembers(ctx, MemberFilter{}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "m2", got.Items[0].ID)
	for _, m := range got.Items {
		assert.Equal(t, MaskedValue, m.NICPassport)
	}

	got, err = uc.ListMembers(ctx, MemberFilter{Search: "LOVE"}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "m1", got.Items[0].ID)

	got, err = uc.ListMembers(ctx, MemberFilter{Search: ".*"}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	got, err = uc.ListMembers(ctx, MemberFilter{Tier: model.TierRuby}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Total)
}

func TestListWalkInGuestsByDay(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.WalkInGuests.InsertMany(ctx, []model.WalkInGuest{
		{ID: "g1", IDDocument: "P1", VisitDate: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)},
		{ID: "g2", IDDocument: "P2", VisitDate: time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)},
		{ID: "g3", IDDocument: "P3", VisitDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
	}))

	got, err := uc.ListWalkInGuests(ctx, "2026-10-14", pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "g2", got.Items[0].ID)
	for _, g := range got.Items {
		assert.Equal(t, MaskedValue, g.IDDocument)
	}

	got, err = uc.ListWalkInGuests(ctx, "2026-10-15T08:00:00Z", pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "g3", got.Items[0].ID)

	_, err = uc.ListWalkInGuests(ctx, "14/10/2026", pagination.Params{Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListInactiveCustomersAttachesProfiles(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	visit := wednesdayNoon.AddDate(0, 0, -90)
	older := wednesdayNoon.AddDate(0, 0, -120)
	require.NoError(t, uc.cols.Members.InsertMany(ctx, []model.Member{
		{ID: "m1", IsActive: true, LastVisit: &visit},
		{ID: "m2", IsActive: true, LastVisit: &older},
		{ID: "m3", IsActive: true},
	}))
	require.NoError(t, uc.cols.CustomerAnalytics.InsertMany(ctx, []model.CustomerAnalytics{
		{ID: "a1", MemberID: "m1", RiskScore: f64(0.8), AvgSpendPerVisit: f64(250), FavoriteGames: []string{"Poker"}},
	}))
	require.NoError(t, uc.cols.CustomerAnalytics.Insert(ctx, &model.CustomerAnalytics{ID: "a2", MemberID: "m2"}))

	got, err := uc.ListInactiveCustomers(ctx, 60, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)

	assert.Equal(t, "m2", got.Items[0].ID)
	require.NotNil(t, got.Items[0].RiskScore)
	assert.Equal(t, 0.5, *got.Items[0].RiskScore)
	assert.Equal(t, 0.0, *got.Items[0].AvgSpend)
	assert.Equal(t, []string{}, got.Items[0].FavoriteGames)

	assert.Equal(t, "m1", got.Items[1].ID)
	assert.Equal(t, 0.8, *got.Items[1].RiskScore)
	assert.Equal(t, []string{"Poker"}, got.Items[1].FavoriteGames)

	_, err = uc.ListInactiveCustomers(ctx, 0, pagination.Params{Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListInactiveCustomersWithoutProfile(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	visit := wednesdayNoon.AddDate(0, 0, -90)
	require.NoError(t, uc.cols.Members.Insert(ctx, &model.Member{ID: "m1", IsActive: true, LastVisit: &visit}))

	got, err := uc.ListInactiveCustomers(ctx, 30, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].RiskScore)
	assert.Nil(t, got.Items[0].FavoriteGames)
}

func TestListBirthdayCalendarValidatesMonth(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.BirthdayCalendar.InsertMany(ctx, []model.BirthdayEntry{
		{ID: "b1", BirthMonth: 10, BirthDay: 30},
		{ID: "b2", BirthMonth: 10, BirthDay: 2},
		{ID: "b3", BirthMonth: 3, BirthDay: 1},
	}))

	got, err := uc.ListBirthdayCalendar(ctx, 10, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "b2", got.Items[0].ID)

	got, err = uc.ListBirthdayCalendar(ctx, 0, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "b3", got.Items[0].ID)

	_, err = uc.ListBirthdayCalendar(ctx, 13, pagination.Params{Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListVIPExperiencesEnrichesMember(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.Members.Insert(ctx, &model.Member{ID: "m1", FirstName: "Ada", LastName: "Lovelace", Tier: model.TierDiamond}))
	require.NoError(t, uc.cols.VIPExperiences.InsertMany(ctx, []model.VIPExperience{
		{ID: "e1", MemberID: "m1", ScheduledDate: wednesdayNoon},
		{ID: "e2", MemberID: "missing", ScheduledDate: wednesdayNoon.Add(-time.Hour)},
	}))

	got, err := uc.ListVIPExperiences(ctx, "", pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Ada Lovelace", got.Items[0].MemberName)
	assert.Equal(t, model.TierDiamond, got.Items[0].MemberTier)
	assert.Empty(t, got.Items[1].MemberName)
	assert.Empty(t, got.Items[1].MemberTier)
}

func TestListTrainingRecordsEnrichesStaffAndCourse(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.Staff.Insert(ctx, &model.StaffMember{ID: "st1", FirstName: "Sam", LastName: "Perera"}))
	require.NoError(t, uc.cols.TrainingCourses.Insert(ctx, &model.TrainingCourse{ID: "c1", Title: "Responsible Gaming"}))
	require.NoError(t, uc.cols.TrainingRecords.InsertMany(ctx, []model.TrainingRecord{
		{ID: "r1", StaffID: "st1", CourseID: "c1", EnrollmentDate: wednesdayNoon},
		{ID: "r2", StaffID: "st1", CourseID: "retired", EnrollmentDate: wednesdayNoon.Add(-time.Hour)},
	}))

	got, err := uc.ListTrainingRecords(ctx, TrainingRecordFilter{StaffID: "st1"}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Sam Perera", got.Items[0].StaffName)
	assert.Equal(t, "Responsible Gaming", got.Items[0].CourseTitle)
	assert.Equal(t, "Sam Perera", got.Items[1].StaffName)
	assert.Empty(t, got.Items[1].CourseTitle)
}

// failingLookupBackend fails point lookups on one collection.
type failingLookupBackend struct {
	store.Backend
	collection string
}

func (b failingLookupBackend) FindOne(ctx context.Context, collection string, filter bson.M) (bson.Raw, error) {
	if collection == b.collection {
		return nil, errors.New("connection reset")
	}
	return b.Backend.FindOne(ctx, collection, filter)
}

func TestListEnrichmentSurfacesStoreFailures(t *testing.T) {
	ctx := context.Background()
	visit := wednesdayNoon.AddDate(0, 0, -90)
	page := pagination.Params{Limit: 10}

	tests := []struct {
		name       string
		collection string
		list       func(uc *AdminUseCase) error
	}{
		{
			name:       "gaming sessions",
			collection: store.MembersCollection,
			list: func(uc *AdminUseCase) error {
				require.NoError(t, uc.cols.GamingSessions.Insert(ctx, &model.GamingSession{ID: "s1", MemberID: "m1", SessionStart: wednesdayNoon}))
				_, err := uc.ListGamingSessions(ctx, "", page)
				return err
			},
		},
		{
			name:       "vip experiences",
			collection: store.MembersCollection,
			list: func(uc *AdminUseCase) error {
				require.NoError(t, uc.cols.VIPExperiences.Insert(ctx, &model.VIPExperience{ID: "e1", MemberID: "m1", ScheduledDate: wednesdayNoon}))
				_, err := uc.ListVIPExperiences(ctx, "", page)
				return err
			},
		},
		{
			name:       "training records",
			collection: store.TrainingCoursesCollection,
			list: func(uc *AdminUseCase) error {
				require.NoError(t, uc.cols.TrainingRecords.Insert(ctx, &model.TrainingRecord{ID: "r1", StaffID: "st1", CourseID: "c1", EnrollmentDate: wednesdayNoon}))
				_, err := uc.ListTrainingRecords(ctx, TrainingRecordFilter{}, page)
				return err
			},
		},
		{
			name:       "inactive customers",
			collection: store.CustomerAnalyticsCollection,
			list: func(uc *AdminUseCase) error {
				require.NoError(t, uc.cols.Members.Insert(ctx, &model.Member{ID: "m1", IsActive: true, LastVisit: &visit}))
				_, err := uc.ListInactiveCustomers(ctx, 30, page)
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := failingLookupBackend{Backend: store.NewMemoryBackend(), collection: tt.collection}
			uc := newTestUseCase(t, backend, wednesdayNoon)

			err := tt.list(uc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "connection reset")
			assert.NotErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestCreateVIPExperienceRequiresMember(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	_, err := uc.CreateVIPExperience(ctx, testActor, model.VIPExperience{MemberID: "ghost", ExperienceType: "yacht"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Member not found", err.Error())

	require.NoError(t, uc.cols.Members.Insert(ctx, &model.Member{ID: "m1"}))
	id, err := uc.CreateVIPExperience(ctx, testActor, model.VIPExperience{MemberID: "m1", ExperienceType: "yacht"})
	require.NoError(t, err)

	exp, err := uc.cols.VIPExperiences.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "planned", exp.Status)
}

func TestCreatePerformanceReviewUpdatesStaff(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	_, err := uc.CreatePerformanceReview(ctx, testActor, model.PerformanceReview{StaffID: "ghost", OverallScore: 70})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, uc.cols.Staff.Insert(ctx, &model.StaffMember{ID: "st1", EmploymentStatus: "active"}))
	id, err := uc.CreatePerformanceReview(ctx, testActor, model.PerformanceReview{StaffID: "st1", OverallScore: 88})
	require.NoError(t, err)

	review, err := uc.cols.PerformanceReviews.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testActor.UserID, review.ReviewerID)
	assert.True(t, review.NextReviewDate.Equal(wednesdayNoon.AddDate(0, 6, 0)))

	staff, err := uc.cols.Staff.FindByID(ctx, "st1")
	require.NoError(t, err)
	require.NotNil(t, staff.PerformanceScore)
	assert.Equal(t, 88.0, *staff.PerformanceScore)
	require.NotNil(t, staff.NextReviewDue)
	assert.True(t, staff.NextReviewDue.Equal(review.NextReviewDate))
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	tests := []struct {
		name string
		run  func() error
	}{
		{"package with unknown tier", func() error {
			_, err := uc.CreateGamingPackage(ctx, testActor, model.GamingPackage{Name: "x", TierAccess: []string{"Gold"}})
			return err
		}},
		{"campaign with unknown status", func() error {
			_, err := uc.CreateCampaign(ctx, testActor, model.MarketingCampaign{Name: "x", Status: "live"})
			return err
		}},
		{"campaign ending before start", func() error {
			_, err := uc.CreateCampaign(ctx, testActor, model.MarketingCampaign{Name: "x", StartDate: wednesdayNoon, EndDate: wednesdayNoon.Add(-time.Hour)})
			return err
		}},
		{"booking departing before arrival", func() error {
			_, err := uc.CreateGroupBooking(ctx, testActor, model.GroupBooking{GroupName: "x", ArrivalDate: wednesdayNoon, DepartureDate: wednesdayNoon.Add(-time.Hour)})
			return err
		}},
		{"notification with unknown priority", func() error {
			_, err := uc.CreateNotification(ctx, testActor, model.Notification{Title: "x", Priority: "critical"})
			return err
		}},
		{"retention archiving after deletion", func() error {
			_, err := uc.CreateRetentionPolicy(ctx, testActor, model.DataRetentionPolicy{RetentionPeriodDays: 30, ArchiveAfterDays: 60})
			return err
		}},
		{"course with negative duration", func() error {
			_, err := uc.CreateTrainingCourse(ctx, testActor, model.TrainingCourse{Title: "x", DurationHours: -1})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), ErrInvalidInput)
		})
	}

	n, err := uc.cols.AuditLogs.Count(ctx, bson.M{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	campaignID, err := uc.CreateCampaign(ctx, testActor, model.MarketingCampaign{Name: "Diwali", StartDate: wednesdayNoon, EndDate: wednesdayNoon.AddDate(0, 0, 7)})
	require.NoError(t, err)
	campaign, err := uc.cols.MarketingCampaigns.FindByID(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignDraft, campaign.Status)
	assert.Equal(t, testActor.UserID, campaign.CreatedBy)

	bookingID, err := uc.CreateGroupBooking(ctx, testActor, model.GroupBooking{GroupName: "Tour", GroupSize: 12})
	require.NoError(t, err)
	booking, err := uc.cols.GroupBookings.FindByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, "inquiry", booking.Status)
	assert.True(t, booking.BookingDate.Equal(wednesdayNoon))

	notificationID, err := uc.CreateNotification(ctx, testActor, model.Notification{Title: "Shift", Content: "Briefing at 6"})
	require.NoError(t, err)
	notification, err := uc.cols.Notifications.FindByID(ctx, notificationID)
	require.NoError(t, err)
	assert.Equal(t, "normal", notification.Priority)
	assert.Equal(t, "all", notification.RecipientType)
	assert.Equal(t, []string{"in_app"}, notification.Channels)
	assert.Equal(t, "sent", notification.Status)

	n, err := uc.cols.AuditLogs.Count(ctx, bson.M{"action": "create"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestNotificationAndIntegrationUpdates(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	assert.ErrorIs(t, uc.MarkNotificationRead(ctx, testActor, "missing"), ErrNotFound)
	assert.ErrorIs(t, uc.SyncIntegration(ctx, testActor, "missing"), ErrNotFound)

	notificationID, err := uc.CreateNotification(ctx, testActor, model.Notification{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, uc.MarkNotificationRead(ctx, testActor, notificationID))
	notification, err := uc.cols.Notifications.FindByID(ctx, notificationID)
	require.NoError(t, err)
	assert.Equal(t, "read", notification.Status)
	require.NotNil(t, notification.ReadAt)

	integrationID, err := uc.CreateIntegration(ctx, testActor, model.SystemIntegration{Name: "CRM", Type: "crm"})
	require.NoError(t, err)
	require.NoError(t, uc.SyncIntegration(ctx, testActor, integrationID))
	integration, err := uc.cols.Integrations.FindByID(ctx, integrationID)
	require.NoError(t, err)
	assert.Equal(t, "success", integration.SyncStatus)
	assert.Equal(t, "active", integration.Status)
	require.NotNil(t, integration.LastSync)
	assert.True(t, integration.LastSync.Equal(wednesdayNoon))
}
