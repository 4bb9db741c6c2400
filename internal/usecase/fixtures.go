package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/store"
)

func ptr[T any](v T) *T { return &v }

type resetter interface {
	Name() string
	DeleteAll(ctx context.Context) error
}

// SampleDataCounts reports how many documents each collection received.
type SampleDataCounts map[string]int

// LoadSampleData wipes every collection and fills it with demonstration
// records. It is destructive and only exposed when explicitly enabled.
func (uc *AdminUseCase) LoadSampleData(ctx context.Context) (SampleDataCounts, error) {
	c := uc.cols
	for _, col := range []resetter{
		c.Members, c.GamingSessions, c.GamingPackages, c.Rewards, c.AuditLogs,
		c.MarketingCampaigns, c.CustomerAnalytics, c.WalkInGuests, c.BirthdayCalendar,
		c.VIPExperiences, c.GroupBookings, c.Staff, c.TrainingCourses, c.TrainingRecords,
		c.PerformanceReviews, c.ComplianceReports, c.AnalyticsReports, c.RetentionPolicies,
		c.Notifications, c.NotificationTemplates, c.Integrations,
	} {
		if err := col.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("reset %s: %w", col.Name(), err)
		}
	}

	now := uc.now()
	counts := SampleDataCounts{}
	add := func(name string, n int, err error) error {
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		counts[name] = n
		return nil
	}

	members := sampleMembers(now)
	if err := add(store.MembersCollection, len(members), c.Members.InsertMany(ctx, members)); err != nil {
		return nil, err
	}
	sessions := sampleSessions(now, members)
	if err := add(store.GamingSessionsCollection, len(sessions), c.GamingSessions.InsertMany(ctx, sessions)); err != nil {
		return nil, err
	}
	packages := samplePackages(now)
	if err := add(store.GamingPackagesCollection, len(packages), c.GamingPackages.InsertMany(ctx, packages)); err != nil {
		return nil, err
	}
	rewards := sampleRewards(now)
	if err := add(store.RewardsCollection, len(rewards), c.Rewards.InsertMany(ctx, rewards)); err != nil {
		return nil, err
	}

	var (
		birthdays []model.BirthdayEntry
		profiles  []model.CustomerAnalytics
	)
	for i, m := range members {
		if i%5 == 0 {
			birthdays = append(birthdays, model.BirthdayEntry{
				ID: uuid.NewString(), MemberID: m.ID, MemberName: m.FullName(), Email: m.Email, Phone: m.Phone,
				Tier: m.Tier, BirthdayDate: m.DateOfBirth, BirthMonth: int(m.DateOfBirth.Month()),
				BirthDay: m.DateOfBirth.Day(), NotificationSent: i%10 == 0,
			})
		}
		if i%2 == 0 {
			profiles = append(profiles, model.CustomerAnalytics{
				ID: uuid.NewString(), MemberID: m.ID, LastActivityDate: now.AddDate(0, 0, -i),
				VisitFrequency: float64(10 - i%10), AvgSessionDuration: 90 + float64(i%60),
				AvgSpendPerVisit: ptr(150 + float64(i*5)), FavoriteGames: []string{gameTypes[i%len(gameTypes)]},
				BirthdayMonth: int(m.DateOfBirth.Month()), RiskScore: ptr(float64(i%10) / 10), LastUpdated: now,
			})
		}
	}
	if err := add(store.BirthdayCalendarCollection, len(birthdays), c.BirthdayCalendar.InsertMany(ctx, birthdays)); err != nil {
		return nil, err
	}
	if err := add(store.CustomerAnalyticsCollection, len(profiles), c.CustomerAnalytics.InsertMany(ctx, profiles)); err != nil {
		return nil, err
	}

	guests := make([]model.WalkInGuest, 0, 20)
	for i := 0; i < 20; i++ {
		visit := now.AddDate(0, 0, -(i % 4))
		guests = append(guests, model.WalkInGuest{
			ID: uuid.NewString(), FirstName: fmt.Sprintf("Guest%d", i), LastName: "Visitor",
			Nationality: []string{"Sri Lankan", "Indian", "British", "Chinese"}[i%4],
			IDDocument:  fmt.Sprintf("P%07d", i), VisitDate: visit, EntryTime: visit,
			GamesPlayed: []string{gameTypes[i%len(gameTypes)]}, ConvertedToMember: i%3 == 0,
			FollowUpRequired: i%3 != 0, MarketingConsent: i%2 == 0,
		})
	}
	if err := add(store.WalkInGuestsCollection, len(guests), c.WalkInGuests.InsertMany(ctx, guests)); err != nil {
		return nil, err
	}

	campaigns := []model.MarketingCampaign{
		{ID: uuid.NewString(), Name: "Birthday Bonanza", CampaignType: "birthday", Status: model.CampaignActive,
			TargetAudience: []string{"all"}, StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 1, 0),
			Budget: 5000, EstimatedReach: 400, CreatedBy: "system", CreatedAt: now},
		{ID: uuid.NewString(), Name: "Win Back Weekend", CampaignType: "reengagement", Status: model.CampaignDraft,
			TargetAudience: []string{"inactive"}, StartDate: now.AddDate(0, 0, 7), EndDate: now.AddDate(0, 0, 9),
			Budget: 2500, EstimatedReach: 150, CreatedBy: "system", CreatedAt: now},
		{ID: uuid.NewString(), Name: "VIP Gala Night", CampaignType: "vip_event", Status: model.CampaignCompleted,
			TargetAudience: []string{model.TierVIP}, StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, -2, 1),
			Budget: 20000, EstimatedReach: 50, ActualReach: 42, ConversionRate: 84, CreatedBy: "system", CreatedAt: now},
	}
	if err := add(store.MarketingCampaignsCollection, len(campaigns), c.MarketingCampaigns.InsertMany(ctx, campaigns)); err != nil {
		return nil, err
	}

	experiences := make([]model.VIPExperience, 0, 8)
	for i := 0; i < 8; i++ {
		exp := model.VIPExperience{
			ID: uuid.NewString(), MemberID: members[(i*4+3)%len(members)].ID,
			ExperienceType:   []string{"airport_transfer", "private_gaming", "fine_dining", "suite_upgrade"}[i%4],
			ScheduledDate:    now.AddDate(0, 0, i-3),
			ServicesIncluded: []string{"concierge", "chauffeur"}, Cost: ptr(500 + float64(i*250)),
			Status: "confirmed", CreatedAt: now,
		}
		if i < 3 {
			exp.Status = "completed"
			exp.SatisfactionScore = ptr(8 + i%3)
		}
		experiences = append(experiences, exp)
	}
	if err := add(store.VIPExperiencesCollection, len(experiences), c.VIPExperiences.InsertMany(ctx, experiences)); err != nil {
		return nil, err
	}

	bookings := []model.GroupBooking{
		{ID: uuid.NewString(), GroupName: "Colombo Poker Club", ContactPerson: "A. Perera", GroupSize: 12,
			GroupType: "club", BookingDate: now.AddDate(0, 0, -5), ArrivalDate: now.AddDate(0, 0, 3),
			DepartureDate: now.AddDate(0, 0, 5), BudgetRange: "high", TotalEstimatedValue: 24000, Status: "confirmed", CreatedAt: now},
		{ID: uuid.NewString(), GroupName: "Corporate Retreat", ContactPerson: "J. Silva", GroupSize: 30,
			GroupType: "corporate", BookingDate: now.AddDate(0, 0, -1), ArrivalDate: now.AddDate(0, 1, 0),
			DepartureDate: now.AddDate(0, 1, 2), BudgetRange: "medium", TotalEstimatedValue: 45000, Status: "inquiry", CreatedAt: now},
	}
	if err := add(store.GroupBookingsCollection, len(bookings), c.GroupBookings.InsertMany(ctx, bookings)); err != nil {
		return nil, err
	}

	departments := []string{"Gaming", "Security", "Hospitality", "Finance", "Marketing"}
	staff := make([]model.StaffMember, 0, 15)
	for i := 0; i < 15; i++ {
		s := model.StaffMember{
			ID: uuid.NewString(), EmployeeID: fmt.Sprintf("EMP%03d", i+1), FirstName: fmt.Sprintf("Staff%d", i),
			LastName: "Member", Email: fmt.Sprintf("staff%d@casino.example", i), Department: departments[i%len(departments)],
			Position: "Associate", HireDate: now.AddDate(-1-i%5, 0, 0), EmploymentStatus: "active",
			NextReviewDue: ptr(now.AddDate(0, 0, 10*i)), Skills: []string{"customer_service"},
		}
		if i%4 != 0 {
			s.PerformanceScore = ptr(70 + float64(i))
		}
		if i == 14 {
			s.EmploymentStatus = "terminated"
		}
		staff = append(staff, s)
	}
	if err := add(store.StaffCollection, len(staff), c.Staff.InsertMany(ctx, staff)); err != nil {
		return nil, err
	}

	courses := []model.TrainingCourse{
		{ID: uuid.NewString(), Title: "Responsible Gaming", Category: "compliance", DurationHours: 4, Mandatory: true,
			Departments: departments, IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Title: "Anti-Money Laundering", Category: "compliance", DurationHours: 6, Mandatory: true,
			Departments: []string{"Gaming", "Finance"}, IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Title: "VIP Hosting Excellence", Category: "service", DurationHours: 3,
			Departments: []string{"Hospitality", "Marketing"}, IsActive: true, CreatedAt: now},
	}
	if err := add(store.TrainingCoursesCollection, len(courses), c.TrainingCourses.InsertMany(ctx, courses)); err != nil {
		return nil, err
	}

	records := make([]model.TrainingRecord, 0, len(staff))
	for i, s := range staff {
		r := model.TrainingRecord{
			ID: uuid.NewString(), StaffID: s.ID, CourseID: courses[i%len(courses)].ID,
			Status: model.TrainingEnrolled, EnrollmentDate: now.AddDate(0, 0, -3*i),
		}
		if i%2 == 0 {
			r.Status = model.TrainingCompleted
			r.CompletionDate = ptr(now.AddDate(0, 0, -i))
			r.Score = ptr(75 + float64(i))
		}
		records = append(records, r)
	}
	if err := add(store.TrainingRecordsCollection, len(records), c.TrainingRecords.InsertMany(ctx, records)); err != nil {
		return nil, err
	}

	policies := []model.DataRetentionPolicy{
		{ID: uuid.NewString(), PolicyName: "Member PII", DataCategory: "member_data", RetentionPeriodDays: 2555,
			ArchiveAfterDays: 1825, Status: "active", LegalBasis: "PDPA", CreatedAt: now},
		{ID: uuid.NewString(), PolicyName: "Gaming Sessions", DataCategory: "gaming_data", RetentionPeriodDays: 1825,
			ArchiveAfterDays: 365, AutoDelete: true, Status: "active", LegalBasis: "Gaming regulation", CreatedAt: now},
	}
	if err := add(store.RetentionPoliciesCollection, len(policies), c.RetentionPolicies.InsertMany(ctx, policies)); err != nil {
		return nil, err
	}

	templates := []model.NotificationTemplate{
		{ID: uuid.NewString(), Name: "Birthday Greeting", Category: "marketing", Subject: "Happy birthday, {{first_name}}",
			Body: "Celebrate with us and enjoy a complimentary dinner.", Variables: []string{"first_name"},
			Channels: []string{"email", "sms"}, IsActive: true, CreatedAt: now},
	}
	if err := add(store.NotificationTemplatesCollection, len(templates), c.NotificationTemplates.InsertMany(ctx, templates)); err != nil {
		return nil, err
	}

	integrations := []model.SystemIntegration{
		{ID: uuid.NewString(), Name: "Slot Management System", Type: "gaming", Provider: "IGT", Status: "active",
			SyncStatus: "success", LastSync: ptr(now.Add(-time.Hour)), CreatedAt: now},
		{ID: uuid.NewString(), Name: "Hotel PMS", Type: "hospitality", Provider: "Opera", Status: "active",
			SyncStatus: "pending", CreatedAt: now},
	}
	if err := add(store.IntegrationsCollection, len(integrations), c.Integrations.InsertMany(ctx, integrations)); err != nil {
		return nil, err
	}

	uc.logger.Info("sample data loaded", zap.Any("counts", counts))
	return counts, nil
}

var gameTypes = []string{"Blackjack", "Roulette", "Poker", "Baccarat", "Slots"}

func sampleMembers(now time.Time) []model.Member {
	members := make([]model.Member, 0, 100)
	for i := 0; i < 100; i++ {
		m := model.Member{
			ID:                uuid.NewString(),
			MemberNumber:      fmt.Sprintf("MB%d", 10001+i),
			FirstName:         fmt.Sprintf("Member%d", i),
			LastName:          fmt.Sprintf("LastName%d", i),
			Email:             fmt.Sprintf("member%d@example.com", i),
			Phone:             fmt.Sprintf("07712345%03d", i),
			DateOfBirth:       time.Date(1980+i%40, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC),
			Nationality:       "Sri Lankan",
			NICPassport:       fmt.Sprintf("199%07dV", i),
			Tier:              model.Tiers[i%len(model.Tiers)],
			PointsBalance:     float64(i * 100),
			TotalPointsEarned: float64(i * 150),
			LifetimeSpend:     float64(i * 500),
			RegistrationDate:  now.AddDate(0, 0, -i*3),
			IsActive:          true,
			KYCVerified:       i%10 != 0,
			MarketingConsent:  i%2 == 0,
			Preferences:       map[string]any{"favorite_game": gameTypes[i%4]},
		}
		if i%7 != 0 {
			m.LastVisit = ptr(now.AddDate(0, 0, -i))
		}
		members = append(members, m)
	}
	return members
}

func sampleSessions(now time.Time, members []model.Member) []model.GamingSession {
	sessions := make([]model.GamingSession, 0, 50)
	for i := 0; i < 50; i++ {
		s := model.GamingSession{
			ID:           uuid.NewString(),
			MemberID:     members[i].ID,
			SessionStart: now.Add(-time.Duration(i) * 3 * time.Hour),
			GameType:     gameTypes[i%len(gameTypes)],
			BuyInAmount:  100 + float64(i*10),
			PointsEarned: float64(i * 2),
			Status:       model.SessionActive,
		}
		if i%5 == 4 {
			s.MachineNumber = fmt.Sprintf("M%d", i%50+1)
		} else {
			s.TableNumber = fmt.Sprintf("T%d", i%20+1)
		}
		if i%3 == 0 {
			cashOut := 80 + float64(i*8)
			s.CashOutAmount = &cashOut
			s.NetResult = ptr(cashOut - s.BuyInAmount)
			s.SessionEnd = ptr(s.SessionStart.Add(2 * time.Hour))
			s.Status = model.SessionCompleted
		}
		sessions = append(sessions, s)
	}
	return sessions
}

func samplePackages(now time.Time) []model.GamingPackage {
	return []model.GamingPackage{
		{ID: uuid.NewString(), Name: "Ruby Starter", Description: "Entry-level gaming package for Ruby members",
			Price: 50, Credits: 75, ValidityHours: 4, TierAccess: model.Tiers, IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Sapphire Experience", Description: "Enhanced gaming package for Sapphire members and above",
			Price: 150, Credits: 200, ValidityHours: 8, TierAccess: model.Tiers[1:], IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Diamond Elite", Description: "Premium gaming package for Diamond members and VIP",
			Price: 500, Credits: 750, ValidityHours: 12, TierAccess: model.Tiers[2:], IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "VIP Ultimate", Description: "Exclusive gaming package for VIP members only",
			Price: 1000, Credits: 1500, ValidityHours: 24, TierAccess: model.Tiers[3:], IsActive: true, CreatedAt: now},
	}
}

func sampleRewards(now time.Time) []model.Reward {
	return []model.Reward{
		{ID: uuid.NewString(), Name: "Complimentary Dinner", Description: "Free dinner for two at the signature restaurant",
			Category: "dining", PointsRequired: 500, CashValue: 75, TierAccess: model.Tiers, IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Weekend Getaway", Description: "Two-night stay at the hotel",
			Category: "accommodation", PointsRequired: 2000, CashValue: 300, TierAccess: model.Tiers[1:], IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "VIP Gaming Credits", Description: "Gaming credits for VIP members",
			Category: "gaming", PointsRequired: 5000, CashValue: 500, TierAccess: model.Tiers[3:], IsActive: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Branded Merchandise", Description: "Luxury merchandise package",
			Category: "merchandise", PointsRequired: 200, CashValue: 50, TierAccess: model.Tiers, IsActive: true, CreatedAt: now},
	}
}
