package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

const inactiveAfterDays = 30

// BirthdaySummary is a birthday calendar row on the marketing dashboard.
type BirthdaySummary struct {
	ID           string    `json:"id"`
	MemberID     string    `json:"member_id"`
	MemberName   string    `json:"member_name"`
	Tier         string    `json:"tier"`
	BirthdayDate time.Time `json:"birthday_date"`
}

// InactiveSummary is an inactive member row on the marketing dashboard.
type InactiveSummary struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Tier      string     `json:"tier"`
	LastVisit *time.Time `json:"last_visit,omitempty"`
}

// MarketingDashboard summarises re-engagement opportunities.
type MarketingDashboard struct {
	BirthdayMembers      []BirthdaySummary `json:"birthday_members"`
	InactiveMembers      []InactiveSummary `json:"inactive_members"`
	WalkInToday          int64             `json:"walk_in_today"`
	WalkInConversionRate float64           `json:"walk_in_conversion_rate"`
	ActiveCampaigns      int64             `json:"active_campaigns"`
	CustomerSegments     map[string]int64  `json:"customer_segments"`
}

// MarketingDashboard computes the marketing intelligence summary.
func (uc *AdminUseCase) MarketingDashboard(ctx context.Context) (*MarketingDashboard, error) {
	return cachedDashboard(ctx, uc, "marketing", uc.computeMarketingDashboard)
}

func (uc *AdminUseCase) computeMarketingDashboard(ctx context.Context) (*MarketingDashboard, error) {
	w := WindowsAt(uc.now())
	out := &MarketingDashboard{
		BirthdayMembers: []BirthdaySummary{},
		InactiveMembers: []InactiveSummary{},
	}

	birthdays, err := uc.cols.BirthdayCalendar.Find(ctx, bson.M{
		"birth_month":       int(w.Now.Month()),
		"notification_sent": false,
	}, store.FindOptions{Sort: asc("birth_day"), Limit: 10})
	if err != nil {
		return nil, err
	}
	for _, b := range birthdays {
		out.BirthdayMembers = append(out.BirthdayMembers, BirthdaySummary{
			ID: b.ID, MemberID: b.MemberID, MemberName: b.MemberName, Tier: b.Tier, BirthdayDate: b.BirthdayDate,
		})
	}

	inactive, err := uc.cols.Members.Find(ctx, inactiveFilter(w.Now, inactiveAfterDays), store.FindOptions{Limit: 20})
	if err != nil {
		return nil, err
	}
	for _, m := range inactive {
		out.InactiveMembers = append(out.InactiveMembers, InactiveSummary{
			ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Tier: m.Tier, LastVisit: m.LastVisit,
		})
	}

	walkIns, err := uc.cols.WalkInGuests.Find(ctx, bson.M{"visit_date": bson.M{"$gte": w.Today}}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	var converted int64
	for _, g := range walkIns {
		if g.ConvertedToMember {
			converted++
		}
	}
	out.WalkInToday = int64(len(walkIns))
	out.WalkInConversionRate = percentage(converted, out.WalkInToday)

	if out.ActiveCampaigns, err = uc.cols.MarketingCampaigns.Count(ctx, bson.M{"status": model.CampaignActive}); err != nil {
		return nil, err
	}
	if out.CustomerSegments, err = uc.membersByTier(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func inactiveFilter(now time.Time, days int) bson.M {
	return bson.M{
		"last_visit": bson.M{"$lt": now.AddDate(0, 0, -days)},
		"is_active":  true,
	}
}

// ListBirthdayCalendar returns calendar entries, optionally for one month.
func (uc *AdminUseCase) ListBirthdayCalendar(ctx context.Context, month int, p pagination.Params) (ListResult[model.BirthdayEntry], error) {
	filter := bson.M{}
	if month != 0 {
		if month < 1 || month > 12 {
			return ListResult[model.BirthdayEntry]{}, invalidf("month must be between 1 and 12")
		}
		filter["birth_month"] = month
	}
	return listPage(ctx, uc.cols.BirthdayCalendar, filter, []store.SortField{{Field: "birth_month"}, {Field: "birth_day"}}, p)
}

// InactiveCustomer is an inactive member with behavioural analytics attached.
type InactiveCustomer struct {
	model.Member  `bson:",inline"`
	RiskScore     *float64 `json:"risk_score,omitempty" bson:"risk_score,omitempty"`
	AvgSpend      *float64 `json:"avg_spend,omitempty" bson:"avg_spend,omitempty"`
	FavoriteGames []string `json:"favorite_games,omitempty" bson:"favorite_games,omitempty"`
}

// ListInactiveCustomers returns active members whose last visit is more than
// days ago. Analytics fields are attached only when a profile exists.
func (uc *AdminUseCase) ListInactiveCustomers(ctx context.Context, days int, p pagination.Params) (ListResult[InactiveCustomer], error) {
	if days <= 0 {
		return ListResult[InactiveCustomer]{}, invalidf("days must be positive")
	}
	res, err := listPage(ctx, uc.cols.Members, inactiveFilter(uc.now(), days), asc("last_visit"), p)
	if err != nil {
		return ListResult[InactiveCustomer]{}, err
	}
	out := mapItems(res, func(m model.Member) InactiveCustomer { return InactiveCustomer{Member: m} })
	for i := range out.Items {
		profile, err := lookupRef(ctx, uc, "usecase.list_inactive_customers", uc.cols.CustomerAnalytics, bson.M{"member_id": out.Items[i].ID})
		if err != nil {
			return ListResult[InactiveCustomer]{}, err
		}
		if profile == nil {
			continue
		}
		risk, spend := 0.5, 0.0
		if profile.RiskScore != nil {
			risk = *profile.RiskScore
		}
		if profile.AvgSpendPerVisit != nil {
			spend = *profile.AvgSpendPerVisit
		}
		out.Items[i].RiskScore = &risk
		out.Items[i].AvgSpend = &spend
		out.Items[i].FavoriteGames = profile.FavoriteGames
		if out.Items[i].FavoriteGames == nil {
			out.Items[i].FavoriteGames = []string{}
		}
	}
	return out, nil
}

// ListWalkInGuests returns walk-in guests, optionally for one calendar day
// (YYYY-MM-DD or RFC 3339). Identity documents are masked.
func (uc *AdminUseCase) ListWalkInGuests(ctx context.Context, date string, p pagination.Params) (ListResult[model.WalkInGuest], error) {
	filter := bson.M{}
	if date = strings.TrimSpace(date); date != "" {
		day, err := parseDay(date)
		if err != nil {
			return ListResult[model.WalkInGuest]{}, err
		}
		filter["visit_date"] = bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}
	}
	res, err := listPage(ctx, uc.cols.WalkInGuests, filter, desc("visit_date"), p)
	if err != nil {
		return res, err
	}
	for i := range res.Items {
		res.Items[i].IDDocument = MaskedValue
	}
	return res, nil
}

func parseDay(value string) (time.Time, error) {
	var (
		t   time.Time
		err error
	)
	if len(value) == len("2006-01-02") {
		t, err = time.Parse("2006-01-02", value)
	} else {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return time.Time{}, invalidf("date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CampaignFilter narrows the campaign list.
type CampaignFilter struct {
	Status       string
	CampaignType string
}

// ListCampaigns returns campaigns, newest first.
func (uc *AdminUseCase) ListCampaigns(ctx context.Context, f CampaignFilter, p pagination.Params) (ListResult[model.MarketingCampaign], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", f.Status)
	setIfPresent(filter, "campaign_type", f.CampaignType)
	return listPage(ctx, uc.cols.MarketingCampaigns, filter, desc("created_at"), p)
}

var campaignStatuses = map[string]bool{
	model.CampaignDraft:     true,
	model.CampaignActive:    true,
	model.CampaignCompleted: true,
	model.CampaignPaused:    true,
}

// CreateCampaign stores a campaign owned by actor. Status defaults to draft.
func (uc *AdminUseCase) CreateCampaign(ctx context.Context, actor Actor, c model.MarketingCampaign) (string, error) {
	if c.Status == "" {
		c.Status = model.CampaignDraft
	}
	if !campaignStatuses[c.Status] {
		return "", invalidf("unknown campaign status %q", c.Status)
	}
	if c.EndDate.Before(c.StartDate) {
		return "", invalidf("end_date precedes start_date")
	}
	c.ID = uuid.NewString()
	c.CreatedBy = actor.UserID
	c.CreatedAt = uc.now()
	if err := uc.cols.MarketingCampaigns.Insert(ctx, &c); err != nil {
		return "", uc.storeError("usecase.create_campaign", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "marketing_campaign", c.ID, map[string]any{
		"campaign_name": c.Name,
		"campaign_type": c.CampaignType,
	})
	return c.ID, nil
}
