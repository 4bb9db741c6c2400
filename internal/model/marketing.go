package model

import "time"

// MarketingCampaign is a targeted promotion.
type MarketingCampaign struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name" binding:"required"`
	Description    string    `bson:"description" json:"description"`
	CampaignType   string    `bson:"campaign_type" json:"campaign_type" binding:"required"`
	TargetAudience []string  `bson:"target_audience" json:"target_audience"`
	StartDate      time.Time `bson:"start_date" json:"start_date" binding:"required"`
	EndDate        time.Time `bson:"end_date" json:"end_date" binding:"required"`
	Budget         float64   `bson:"budget" json:"budget"`
	EstimatedReach int       `bson:"estimated_reach" json:"estimated_reach"`
	ActualReach    int       `bson:"actual_reach" json:"actual_reach"`
	ConversionRate float64   `bson:"conversion_rate" json:"conversion_rate"`
	Status         string    `bson:"status" json:"status"`
	CreatedBy      string    `bson:"created_by" json:"created_by"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// CustomerAnalytics is a precomputed behavioural profile for a member.
type CustomerAnalytics struct {
	ID                  string    `bson:"id" json:"id"`
	MemberID            string    `bson:"member_id" json:"member_id"`
	LastActivityDate    time.Time `bson:"last_activity_date" json:"last_activity_date"`
	VisitFrequency      float64   `bson:"visit_frequency" json:"visit_frequency"`
	AvgSessionDuration  float64   `bson:"avg_session_duration" json:"avg_session_duration"`
	AvgSpendPerVisit    *float64  `bson:"avg_spend_per_visit,omitempty" json:"avg_spend_per_visit,omitempty"`
	FavoriteGames       []string  `bson:"favorite_games,omitempty" json:"favorite_games,omitempty"`
	PreferredVisitTimes []string  `bson:"preferred_visit_times,omitempty" json:"preferred_visit_times,omitempty"`
	BirthdayMonth       int       `bson:"birthday_month" json:"birthday_month"`
	RiskScore           *float64  `bson:"risk_score,omitempty" json:"risk_score,omitempty"`
	MarketingSegments   []string  `bson:"marketing_segments,omitempty" json:"marketing_segments,omitempty"`
	LastUpdated         time.Time `bson:"last_updated" json:"last_updated"`
}

// WalkInGuest is a non-member visitor.
type WalkInGuest struct {
	ID                string     `bson:"id" json:"id"`
	FirstName         string     `bson:"first_name" json:"first_name"`
	LastName          string     `bson:"last_name" json:"last_name"`
	Phone             string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Email             string     `bson:"email,omitempty" json:"email,omitempty"`
	Nationality       string     `bson:"nationality" json:"nationality"`
	IDDocument        string     `bson:"id_document" json:"id_document"`
	VisitDate         time.Time  `bson:"visit_date" json:"visit_date"`
	EntryTime         time.Time  `bson:"entry_time" json:"entry_time"`
	ExitTime          *time.Time `bson:"exit_time,omitempty" json:"exit_time,omitempty"`
	SpendAmount       *float64   `bson:"spend_amount,omitempty" json:"spend_amount,omitempty"`
	GamesPlayed       []string   `bson:"games_played" json:"games_played"`
	ConvertedToMember bool       `bson:"converted_to_member" json:"converted_to_member"`
	FollowUpRequired  bool       `bson:"follow_up_required" json:"follow_up_required"`
	MarketingConsent  bool       `bson:"marketing_consent" json:"marketing_consent"`
}

// BirthdayEntry is a member's slot in the birthday marketing calendar.
type BirthdayEntry struct {
	ID                string    `bson:"id" json:"id"`
	MemberID          string    `bson:"member_id" json:"member_id"`
	MemberName        string    `bson:"member_name" json:"member_name"`
	Email             string    `bson:"email" json:"email"`
	Phone             string    `bson:"phone" json:"phone"`
	Tier              string    `bson:"tier" json:"tier"`
	BirthdayDate      time.Time `bson:"birthday_date" json:"birthday_date"`
	BirthMonth        int       `bson:"birth_month" json:"birth_month"`
	BirthDay          int       `bson:"birth_day" json:"birth_day"`
	NotificationSent  bool      `bson:"notification_sent" json:"notification_sent"`
	CampaignID        string    `bson:"campaign_id,omitempty" json:"campaign_id,omitempty"`
	CelebrationBooked bool      `bson:"celebration_booked" json:"celebration_booked"`
}

// VIPExperience is a concierge service scheduled for a member.
type VIPExperience struct {
	ID                string     `bson:"id" json:"id"`
	MemberID          string     `bson:"member_id" json:"member_id" binding:"required"`
	ExperienceType    string     `bson:"experience_type" json:"experience_type" binding:"required"`
	ScheduledDate     time.Time  `bson:"scheduled_date" json:"scheduled_date" binding:"required"`
	ActualDate        *time.Time `bson:"actual_date,omitempty" json:"actual_date,omitempty"`
	DurationMinutes   *int       `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
	ServicesIncluded  []string   `bson:"services_included" json:"services_included"`
	SpecialRequests   []string   `bson:"special_requests" json:"special_requests"`
	AssignedStaff     []string   `bson:"assigned_staff" json:"assigned_staff"`
	Cost              *float64   `bson:"cost,omitempty" json:"cost,omitempty"`
	SatisfactionScore *int       `bson:"satisfaction_score,omitempty" json:"satisfaction_score,omitempty" binding:"omitempty,min=1,max=10"`
	Feedback          string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Status            string     `bson:"status" json:"status"`
	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
}

// GroupBooking is a multi-guest reservation.
type GroupBooking struct {
	ID                  string    `bson:"id" json:"id"`
	GroupName           string    `bson:"group_name" json:"group_name" binding:"required"`
	ContactPerson       string    `bson:"contact_person" json:"contact_person" binding:"required"`
	ContactEmail        string    `bson:"contact_email" json:"contact_email"`
	ContactPhone        string    `bson:"contact_phone" json:"contact_phone"`
	GroupSize           int       `bson:"group_size" json:"group_size" binding:"gte=1"`
	GroupType           string    `bson:"group_type" json:"group_type"`
	BookingDate         time.Time `bson:"booking_date" json:"booking_date"`
	ArrivalDate         time.Time `bson:"arrival_date" json:"arrival_date"`
	DepartureDate       time.Time `bson:"departure_date" json:"departure_date"`
	SpecialRequirements []string  `bson:"special_requirements" json:"special_requirements"`
	BudgetRange         string    `bson:"budget_range" json:"budget_range"`
	AssignedCoordinator string    `bson:"assigned_coordinator,omitempty" json:"assigned_coordinator,omitempty"`
	TotalEstimatedValue float64   `bson:"total_estimated_value" json:"total_estimated_value"`
	ActualValue         *float64  `bson:"actual_value,omitempty" json:"actual_value,omitempty"`
	Status              string    `bson:"status" json:"status"`
	Notes               string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
}
