package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/casino-admin/internal/model"
)

func TestDashboardRevenueExcludesMissingNetResult(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	today := wednesdayNoon.Add(-2 * time.Hour)
	sessions := []model.GamingSession{
		{ID: "s1", MemberID: "m1", GameType: "Blackjack", SessionStart: today, Status: model.SessionCompleted, NetResult: f64(-50)},
		{ID: "s2", MemberID: "m1", GameType: "Blackjack", SessionStart: today, Status: model.SessionCompleted, NetResult: f64(-30)},
		{ID: "s3", MemberID: "m2", GameType: "Roulette", SessionStart: today, Status: model.SessionCompleted},
	}
	require.NoError(t, uc.cols.GamingSessions.InsertMany(ctx, sessions))

	got, err := uc.DashboardMetrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 80.0, got.DailyRevenue)
	assert.Equal(t, 80.0, got.WeeklyRevenue)
	assert.Equal(t, 80.0, got.MonthlyRevenue)
	assert.Equal(t, int64(3), got.SessionsToday)
	assert.Equal(t, int64(3), got.SessionsThisWeek)
	assert.Equal(t, []GameStat{
		{GameType: "Blackjack", Sessions: 2, Revenue: 80},
		{GameType: "Roulette", Sessions: 1, Revenue: 0},
	}, got.TopGames)
}

func TestDashboardWindowsAndCounts(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	yesterday := wednesdayNoon.AddDate(0, 0, -1)
	lastWeek := wednesdayNoon.AddDate(0, 0, -5)
	lastMonth := wednesdayNoon.AddDate(0, -1, 0)
	sessions := []model.GamingSession{
		{ID: "today-active", GameType: "Slots", SessionStart: wednesdayNoon.Add(-time.Hour), Status: model.SessionActive},
		{ID: "yesterday", GameType: "Slots", SessionStart: yesterday, Status: model.SessionCompleted, NetResult: f64(10)},
		{ID: "last-week", GameType: "Poker", SessionStart: lastWeek, Status: model.SessionCompleted, NetResult: f64(-100)},
		{ID: "last-month", GameType: "Poker", SessionStart: lastMonth, Status: model.SessionCompleted, NetResult: f64(1000)},
	}
	require.NoError(t, uc.cols.GamingSessions.InsertMany(ctx, sessions))

	members := []model.Member{
		{ID: "m1", Tier: model.TierVIP, IsActive: true, RegistrationDate: wednesdayNoon.Add(-time.Hour)},
		{ID: "m2", Tier: model.TierRuby, IsActive: true, RegistrationDate: lastMonth},
		{ID: "m3", Tier: model.TierRuby, IsActive: false, RegistrationDate: lastMonth},
	}
	require.NoError(t, uc.cols.Members.InsertMany(ctx, members))

	got, err := uc.DashboardMetrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.TotalMembers)
	assert.Equal(t, map[string]int64{"Ruby": 1, "Sapphire": 0, "Diamond": 0, "VIP": 1}, got.MembersByTier)
	assert.Equal(t, int64(1), got.ActiveSessions)
	assert.Equal(t, 0.0, got.DailyRevenue)
	assert.Equal(t, 10.0, got.WeeklyRevenue)
	assert.Equal(t, 110.0, got.MonthlyRevenue)
	assert.Equal(t, int64(1), got.SessionsToday)
	assert.Equal(t, int64(2), got.SessionsThisWeek)
	assert.Equal(t, int64(3), got.SessionsThisMonth)
	assert.Equal(t, int64(1), got.RecentRegistrations)
}

func TestMarketingDashboardWithoutWalkIns(t *testing.T) {
	uc := newTestUseCase(t, nil, wednesdayNoon)

	got, err := uc.MarketingDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.WalkInToday)
	assert.Equal(t, 0.0, got.WalkInConversionRate)
	assert.Empty(t, got.BirthdayMembers)
	assert.Empty(t, got.InactiveMembers)
}

func TestMarketingDashboard(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	longAgo := wednesdayNoon.AddDate(0, 0, -45)
	recent := wednesdayNoon.AddDate(0, 0, -2)
	require.NoError(t, uc.cols.Members.InsertMany(ctx, []model.Member{
		{ID: "m1", FirstName: "Old", Tier: model.TierDiamond, IsActive: true, LastVisit: &longAgo},
		{ID: "m2", FirstName: "New", Tier: model.TierDiamond, IsActive: true, LastVisit: &recent},
		{ID: "m3", FirstName: "Never", Tier: model.TierRuby, IsActive: true},
	}))
	require.NoError(t, uc.cols.WalkInGuests.InsertMany(ctx, []model.WalkInGuest{
		{ID: "g1", VisitDate: wednesdayNoon.Add(-time.Hour), ConvertedToMember: true},
		{ID: "g2", VisitDate: wednesdayNoon.Add(-2 * time.Hour)},
		{ID: "g3", VisitDate: wednesdayNoon.Add(-3 * time.Hour)},
		{ID: "g4", VisitDate: wednesdayNoon.Add(-4 * time.Hour), ConvertedToMember: true},
		{ID: "old", VisitDate: wednesdayNoon.AddDate(0, 0, -1), ConvertedToMember: true},
	}))
	require.NoError(t, uc.cols.BirthdayCalendar.InsertMany(ctx, []model.BirthdayEntry{
		{ID: "b1", MemberID: "m1", BirthMonth: 10, BirthDay: 20},
		{ID: "b2", MemberID: "m2", BirthMonth: 10, BirthDay: 3, NotificationSent: true},
		{ID: "b3", MemberID: "m3", BirthMonth: 11, BirthDay: 1},
	}))
	require.NoError(t, uc.cols.MarketingCampaigns.InsertMany(ctx, []model.MarketingCampaign{
		{ID: "c1", Status: model.CampaignActive},
		{ID: "c2", Status: model.CampaignPaused},
	}))

	got, err := uc.MarketingDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.WalkInToday)
	assert.Equal(t, 50.0, got.WalkInConversionRate)
	require.Len(t, got.InactiveMembers, 1)
	assert.Equal(t, "m1", got.InactiveMembers[0].ID)
	require.Len(t, got.BirthdayMembers, 1)
	assert.Equal(t, "b1", got.BirthdayMembers[0].ID)
	assert.Equal(t, int64(1), got.ActiveCampaigns)
	assert.Equal(t, int64(2), got.CustomerSegments[model.TierDiamond])
}

func TestVIPDashboard(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	score := func(v int) *int { return &v }
	require.NoError(t, uc.cols.VIPExperiences.InsertMany(ctx, []model.VIPExperience{
		{ID: "u1", MemberID: "m1", ScheduledDate: wednesdayNoon.AddDate(0, 0, 2), Status: "planned"},
		{ID: "u2", MemberID: "m2", ScheduledDate: wednesdayNoon.AddDate(0, 0, 1), Status: "confirmed"},
		{ID: "far", MemberID: "m3", ScheduledDate: wednesdayNoon.AddDate(0, 0, 9), Status: "planned"},
		{ID: "c1", Status: "completed", SatisfactionScore: score(9), Cost: f64(1000)},
		{ID: "c2", Status: "completed", SatisfactionScore: score(8)},
		{ID: "c3", Status: "completed", Cost: f64(5000)},
	}))
	require.NoError(t, uc.cols.GroupBookings.InsertMany(ctx, []model.GroupBooking{
		{ID: "g1", Status: "confirmed"},
		{ID: "g2", Status: "in_progress"},
		{ID: "g3", Status: "cancelled"},
	}))

	got, err := uc.VIPDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.UpcomingVIPExperiences)
	assert.Equal(t, int64(2), got.ActiveGroupBookings)
	assert.Equal(t, 8.5, got.AvgVIPSatisfaction)
	assert.Equal(t, 1000.0, got.VIPRevenueThisMonth)
	require.Len(t, got.UpcomingArrivals, 2)
	assert.Equal(t, "m2", got.UpcomingArrivals[0].MemberID)
}

func TestStaffDashboard(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	soon := wednesdayNoon.AddDate(0, 0, 10)
	later := wednesdayNoon.AddDate(0, 3, 0)
	require.NoError(t, uc.cols.Staff.InsertMany(ctx, []model.StaffMember{
		{ID: "s1", Department: "Gaming", EmploymentStatus: "active", PerformanceScore: f64(80), NextReviewDue: &soon},
		{ID: "s2", Department: "Gaming", EmploymentStatus: "active", NextReviewDue: &later},
		{ID: "s3", Department: "Security", EmploymentStatus: "active", PerformanceScore: f64(90)},
		{ID: "s4", Department: "Security", EmploymentStatus: "terminated", PerformanceScore: f64(10)},
	}))
	done := wednesdayNoon.AddDate(0, 0, -1)
	require.NoError(t, uc.cols.TrainingRecords.InsertMany(ctx, []model.TrainingRecord{
		{ID: "r1", StaffID: "s1", Status: model.TrainingCompleted, EnrollmentDate: wednesdayNoon.AddDate(0, 0, -20), CompletionDate: &done},
		{ID: "r2", StaffID: "s2", Status: model.TrainingEnrolled, EnrollmentDate: wednesdayNoon.AddDate(0, 0, -2)},
		{ID: "r3", StaffID: "s3", Status: model.TrainingFailed, EnrollmentDate: wednesdayNoon.AddDate(0, 0, -3)},
		{ID: "r4", StaffID: "s3", Status: model.TrainingInProgress, EnrollmentDate: wednesdayNoon.AddDate(0, 0, -30)},
	}))
	require.NoError(t, uc.cols.TrainingCourses.Insert(ctx, &model.TrainingCourse{ID: "c1", IsActive: true}))

	got, err := uc.StaffDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.TotalStaff)
	assert.Equal(t, int64(3), got.ActiveStaff)
	assert.Equal(t, []DepartmentCount{{"Gaming", 2}, {"Security", 1}}, got.StaffByDepartment)
	assert.Equal(t, 85.0, got.AvgPerformanceScore)
	assert.Equal(t, 25.0, got.TrainingCompletionRate)
	assert.Equal(t, int64(2), got.RecentEnrollments)
	assert.Equal(t, int64(1), got.ReviewsDue)
	assert.Equal(t, TrainingStats{TotalCourses: 1, TotalEnrollments: 4, CompletedThisMonth: 1, CompletionRate: 25}, got.TrainingStats)
}
