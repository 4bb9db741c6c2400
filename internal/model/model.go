// Package model holds the document shapes stored by the back-office.
//
// Every entity is a flat record keyed by a generated string id stored under
// the "id" field. References between entities (member_id, staff_id, ...) are
// weak: nothing enforces that the referenced record exists. Optional values
// are pointers tagged omitempty so an unset value is absent in the store
// rather than stored as null or zero.
package model

import "time"

// Loyalty tiers, lowest first.
const (
	TierRuby     = "Ruby"
	TierSapphire = "Sapphire"
	TierDiamond  = "Diamond"
	TierVIP      = "VIP"
)

// Tiers lists every loyalty tier in rank order.
var Tiers = []string{TierRuby, TierSapphire, TierDiamond, TierVIP}

// Gaming session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionSuspended = "suspended"
)

// Campaign statuses.
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignCompleted = "completed"
	CampaignPaused    = "paused"
)

// Training record statuses.
const (
	TrainingEnrolled   = "enrolled"
	TrainingInProgress = "in_progress"
	TrainingCompleted  = "completed"
	TrainingFailed     = "failed"
	TrainingExpired    = "expired"
)

// Member is a loyalty programme member.
type Member struct {
	ID                string         `bson:"id" json:"id"`
	MemberNumber      string         `bson:"member_number" json:"member_number"`
	FirstName         string         `bson:"first_name" json:"first_name"`
	LastName          string         `bson:"last_name" json:"last_name"`
	Email             string         `bson:"email" json:"email"`
	Phone             string         `bson:"phone" json:"phone"`
	DateOfBirth       time.Time      `bson:"date_of_birth" json:"date_of_birth"`
	Nationality       string         `bson:"nationality" json:"nationality"`
	NICPassport       string         `bson:"nic_passport,omitempty" json:"nic_passport,omitempty"`
	Tier              string         `bson:"tier" json:"tier"`
	PointsBalance     float64        `bson:"points_balance" json:"points_balance"`
	TotalPointsEarned float64        `bson:"total_points_earned" json:"total_points_earned"`
	LifetimeSpend     float64        `bson:"lifetime_spend" json:"lifetime_spend"`
	RegistrationDate  time.Time      `bson:"registration_date" json:"registration_date"`
	LastVisit         *time.Time     `bson:"last_visit,omitempty" json:"last_visit,omitempty"`
	IsActive          bool           `bson:"is_active" json:"is_active"`
	SelfExcluded      bool           `bson:"self_excluded" json:"self_excluded"`
	KYCVerified       bool           `bson:"kyc_verified" json:"kyc_verified"`
	MarketingConsent  bool           `bson:"marketing_consent" json:"marketing_consent"`
	Preferences       map[string]any `bson:"preferences,omitempty" json:"preferences,omitempty"`
}

// FullName joins first and last name for display.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// GamingSession is one table or machine session. NetResult is only set once
// the session has completed.
type GamingSession struct {
	ID            string     `bson:"id" json:"id"`
	MemberID      string     `bson:"member_id" json:"member_id"`
	SessionStart  time.Time  `bson:"session_start" json:"session_start"`
	SessionEnd    *time.Time `bson:"session_end,omitempty" json:"session_end,omitempty"`
	GameType      string     `bson:"game_type" json:"game_type"`
	TableNumber   string     `bson:"table_number,omitempty" json:"table_number,omitempty"`
	MachineNumber string     `bson:"machine_number,omitempty" json:"machine_number,omitempty"`
	BuyInAmount   float64    `bson:"buy_in_amount" json:"buy_in_amount"`
	CashOutAmount *float64   `bson:"cash_out_amount,omitempty" json:"cash_out_amount,omitempty"`
	NetResult     *float64   `bson:"net_result,omitempty" json:"net_result,omitempty"`
	PointsEarned  float64    `bson:"points_earned" json:"points_earned"`
	Status        string     `bson:"status" json:"status"`
}

// GamingPackage is a purchasable bundle of gaming credits.
type GamingPackage struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name" binding:"required"`
	Description   string    `bson:"description" json:"description"`
	Price         float64   `bson:"price" json:"price" binding:"gte=0"`
	Credits       float64   `bson:"credits" json:"credits" binding:"gte=0"`
	ValidityHours int       `bson:"validity_hours" json:"validity_hours"`
	TierAccess    []string  `bson:"tier_access" json:"tier_access"`
	IsActive      bool      `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// Reward is an item in the points redemption catalogue.
type Reward struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description" json:"description"`
	Category       string    `bson:"category" json:"category"`
	PointsRequired float64   `bson:"points_required" json:"points_required"`
	CashValue      float64   `bson:"cash_value" json:"cash_value"`
	TierAccess     []string  `bson:"tier_access" json:"tier_access"`
	StockQuantity  *int      `bson:"stock_quantity,omitempty" json:"stock_quantity,omitempty"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// AuditLog records one administrative action.
type AuditLog struct {
	ID            string         `bson:"id" json:"id"`
	Timestamp     time.Time      `bson:"timestamp" json:"timestamp"`
	AdminUserID   string         `bson:"admin_user_id" json:"admin_user_id"`
	AdminUsername string         `bson:"admin_username" json:"admin_username"`
	Action        string         `bson:"action" json:"action"`
	Resource      string         `bson:"resource" json:"resource"`
	ResourceID    string         `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	Details       map[string]any `bson:"details" json:"details"`
	IPAddress     string         `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent     string         `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
}
