package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

// Arrival is an upcoming VIP experience on the travel dashboard.
type Arrival struct {
	MemberID         string    `json:"member_id"`
	ExperienceType   string    `json:"experience_type"`
	ScheduledDate    time.Time `json:"scheduled_date"`
	ServicesIncluded []string  `json:"services_included"`
}

// VIPDashboard summarises VIP experiences and group travel.
type VIPDashboard struct {
	UpcomingVIPExperiences int64     `json:"upcoming_vip_experiences"`
	ActiveGroupBookings    int64     `json:"active_group_bookings"`
	AvgVIPSatisfaction     float64   `json:"avg_vip_satisfaction"`
	VIPRevenueThisMonth    float64   `json:"vip_revenue_this_month"`
	UpcomingArrivals       []Arrival `json:"upcoming_arrivals"`
}

// VIPDashboard computes the VIP travel summary.
func (uc *AdminUseCase) VIPDashboard(ctx context.Context) (*VIPDashboard, error) {
	return cachedDashboard(ctx, uc, "vip", uc.computeVIPDashboard)
}

func (uc *AdminUseCase) computeVIPDashboard(ctx context.Context) (*VIPDashboard, error) {
	now := uc.now()
	out := &VIPDashboard{UpcomingArrivals: []Arrival{}}

	upcoming, err := uc.cols.VIPExperiences.Find(ctx, bson.M{
		"scheduled_date": bson.M{"$gte": now, "$lte": now.AddDate(0, 0, 7)},
		"status":         bson.M{"$in": []string{"planned", "confirmed"}},
	}, store.FindOptions{Sort: asc("scheduled_date")})
	if err != nil {
		return nil, err
	}
	out.UpcomingVIPExperiences = int64(len(upcoming))
	for i, exp := range upcoming {
		if i == 10 {
			break
		}
		services := exp.ServicesIncluded
		if services == nil {
			services = []string{}
		}
		out.UpcomingArrivals = append(out.UpcomingArrivals, Arrival{
			MemberID: exp.MemberID, ExperienceType: exp.ExperienceType, ScheduledDate: exp.ScheduledDate, ServicesIncluded: services,
		})
	}

	if out.ActiveGroupBookings, err = uc.cols.GroupBookings.Count(ctx, bson.M{
		"status": bson.M{"$in": []string{"confirmed", "in_progress"}},
	}); err != nil {
		return nil, err
	}

	completed, err := uc.cols.VIPExperiences.Find(ctx, bson.M{
		"status":             "completed",
		"satisfaction_score": bson.M{"$exists": true},
	}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	scores := make([]*float64, 0, len(completed))
	for _, exp := range completed {
		if exp.SatisfactionScore != nil {
			v := float64(*exp.SatisfactionScore)
			scores = append(scores, &v)
		}
		if exp.Cost != nil {
			out.VIPRevenueThisMonth += *exp.Cost
		}
	}
	out.AvgVIPSatisfaction = round2(average(scores))
	return out, nil
}

// VIPExperienceView is an experience with the member's name and tier.
type VIPExperienceView struct {
	model.VIPExperience `bson:",inline"`
	MemberName          string `json:"member_name,omitempty" bson:"member_name,omitempty"`
	MemberTier          string `json:"member_tier,omitempty" bson:"member_tier,omitempty"`
}

// ListVIPExperiences returns experiences by scheduled date, latest first.
func (uc *AdminUseCase) ListVIPExperiences(ctx context.Context, status string, p pagination.Params) (ListResult[VIPExperienceView], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", status)
	res, err := listPage(ctx, uc.cols.VIPExperiences, filter, desc("scheduled_date"), p)
	if err != nil {
		return ListResult[VIPExperienceView]{}, err
	}
	out := mapItems(res, func(e model.VIPExperience) VIPExperienceView { return VIPExperienceView{VIPExperience: e} })
	for i := range out.Items {
		m, err := uc.lookupMember(ctx, "usecase.list_vip_experiences", out.Items[i].MemberID)
		if err != nil {
			return ListResult[VIPExperienceView]{}, err
		}
		if m != nil {
			out.Items[i].MemberName = m.FullName()
			out.Items[i].MemberTier = m.Tier
		}
	}
	return out, nil
}

// CreateVIPExperience schedules an experience for an existing member.
func (uc *AdminUseCase) CreateVIPExperience(ctx context.Context, actor Actor, exp model.VIPExperience) (string, error) {
	if _, err := uc.cols.Members.FindByID(ctx, exp.MemberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", notFound("Member")
		}
		return "", uc.storeError("usecase.create_vip_experience", actor, err)
	}
	if exp.Status == "" {
		exp.Status = "planned"
	}
	exp.ID = uuid.NewString()
	exp.CreatedAt = uc.now()
	if err := uc.cols.VIPExperiences.Insert(ctx, &exp); err != nil {
		return "", uc.storeError("usecase.create_vip_experience", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "vip_experience", exp.ID, map[string]any{
		"member_id":       exp.MemberID,
		"experience_type": exp.ExperienceType,
	})
	return exp.ID, nil
}

// ListGroupBookings returns bookings, most recently booked first.
func (uc *AdminUseCase) ListGroupBookings(ctx context.Context, status string, p pagination.Params) (ListResult[model.GroupBooking], error) {
	filter := bson.M{}
	setIfPresent(filter, "status", status)
	return listPage(ctx, uc.cols.GroupBookings, filter, desc("booking_date"), p)
}

// CreateGroupBooking stores a booking. Status defaults to inquiry.
func (uc *AdminUseCase) CreateGroupBooking(ctx context.Context, actor Actor, b model.GroupBooking) (string, error) {
	if !b.DepartureDate.IsZero() && b.DepartureDate.Before(b.ArrivalDate) {
		return "", invalidf("departure_date precedes arrival_date")
	}
	now := uc.now()
	if b.Status == "" {
		b.Status = "inquiry"
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = now
	}
	b.ID = uuid.NewString()
	b.CreatedAt = now
	if err := uc.cols.GroupBookings.Insert(ctx, &b); err != nil {
		return "", uc.storeError("usecase.create_group_booking", actor, err)
	}
	uc.recordAction(ctx, actor, "create", "group_booking", b.ID, map[string]any{
		"group_name": b.GroupName,
		"group_size": b.GroupSize,
	})
	return b.ID, nil
}
