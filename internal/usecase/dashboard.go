package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/store"
)

// DashboardMetrics is the headline floor summary.
type DashboardMetrics struct {
	TotalMembers        int64            `json:"total_members"`
	MembersByTier       map[string]int64 `json:"members_by_tier"`
	ActiveSessions      int64            `json:"active_sessions"`
	DailyRevenue        float64          `json:"daily_revenue"`
	WeeklyRevenue       float64          `json:"weekly_revenue"`
	MonthlyRevenue      float64          `json:"monthly_revenue"`
	SessionsToday       int64            `json:"sessions_today"`
	SessionsThisWeek    int64            `json:"sessions_this_week"`
	SessionsThisMonth   int64            `json:"sessions_this_month"`
	TopGames            []GameStat       `json:"top_games"`
	RecentRegistrations int64            `json:"recent_registrations"`
}

// DashboardMetrics computes member, session and revenue figures.
func (uc *AdminUseCase) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	return cachedDashboard(ctx, uc, "metrics", uc.computeDashboardMetrics)
}

func (uc *AdminUseCase) computeDashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	w := WindowsAt(uc.now())
	out := &DashboardMetrics{}

	var err error
	if out.TotalMembers, err = uc.cols.Members.Count(ctx, bson.M{"is_active": true}); err != nil {
		return nil, err
	}
	if out.MembersByTier, err = uc.membersByTier(ctx); err != nil {
		return nil, err
	}
	if out.ActiveSessions, err = uc.cols.GamingSessions.Count(ctx, bson.M{"status": model.SessionActive}); err != nil {
		return nil, err
	}

	for _, win := range []struct {
		start    time.Time
		revenue  *float64
		sessions *int64
	}{
		{w.Today, &out.DailyRevenue, &out.SessionsToday},
		{w.Week, &out.WeeklyRevenue, &out.SessionsThisWeek},
		{w.Month, &out.MonthlyRevenue, &out.SessionsThisMonth},
	} {
		if *win.revenue, err = uc.sessionRevenue(ctx, win.start); err != nil {
			return nil, err
		}
		if *win.sessions, err = uc.cols.GamingSessions.Count(ctx, bson.M{"session_start": bson.M{"$gte": win.start}}); err != nil {
			return nil, err
		}
	}

	completed, err := uc.cols.GamingSessions.Find(ctx, bson.M{"status": model.SessionCompleted}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	samples := make([]gameSample, len(completed))
	for i, s := range completed {
		samples[i] = gameSample{gameType: s.GameType, netResult: s.NetResult}
	}
	out.TopGames = topGames(samples, 5)

	if out.RecentRegistrations, err = uc.cols.Members.Count(ctx, bson.M{"registration_date": bson.M{"$gte": w.Today}}); err != nil {
		return nil, err
	}
	return out, nil
}

// sessionRevenue sums |net_result| over completed sessions started at or
// after since. Sessions without a result are left out.
func (uc *AdminUseCase) sessionRevenue(ctx context.Context, since time.Time) (float64, error) {
	sessions, err := uc.cols.GamingSessions.Find(ctx, bson.M{
		"session_start": bson.M{"$gte": since},
		"status":        model.SessionCompleted,
		"net_result":    bson.M{"$exists": true},
	}, store.FindOptions{})
	if err != nil {
		return 0, err
	}
	results := make([]*float64, len(sessions))
	for i := range sessions {
		results[i] = sessions[i].NetResult
	}
	return sumAbs(results), nil
}

func (uc *AdminUseCase) membersByTier(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(model.Tiers))
	for _, tier := range model.Tiers {
		n, err := uc.cols.Members.Count(ctx, bson.M{"tier": tier, "is_active": true})
		if err != nil {
			return nil, err
		}
		out[tier] = n
	}
	return out, nil
}
