package model

import "time"

// StaffMember is an employee record.
type StaffMember struct {
	ID               string     `bson:"id" json:"id"`
	EmployeeID       string     `bson:"employee_id" json:"employee_id"`
	FirstName        string     `bson:"first_name" json:"first_name"`
	LastName         string     `bson:"last_name" json:"last_name"`
	Email            string     `bson:"email" json:"email"`
	Department       string     `bson:"department" json:"department"`
	Position         string     `bson:"position" json:"position"`
	HireDate         time.Time  `bson:"hire_date" json:"hire_date"`
	EmploymentStatus string     `bson:"employment_status" json:"employment_status"`
	PerformanceScore *float64   `bson:"performance_score,omitempty" json:"performance_score,omitempty"`
	LastReviewDate   *time.Time `bson:"last_review_date,omitempty" json:"last_review_date,omitempty"`
	NextReviewDue    *time.Time `bson:"next_review_due,omitempty" json:"next_review_due,omitempty"`
	Skills           []string   `bson:"skills" json:"skills"`
}

// FullName joins first and last name for display.
func (s StaffMember) FullName() string {
	return s.FirstName + " " + s.LastName
}

// TrainingCourse is a course staff can enrol in.
type TrainingCourse struct {
	ID            string    `bson:"id" json:"id"`
	Title         string    `bson:"title" json:"title" binding:"required"`
	Description   string    `bson:"description" json:"description"`
	Category      string    `bson:"category" json:"category" binding:"required"`
	DurationHours float64   `bson:"duration_hours" json:"duration_hours"`
	Mandatory     bool      `bson:"mandatory" json:"mandatory"`
	Departments   []string  `bson:"departments" json:"departments"`
	IsActive      bool      `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// TrainingRecord is one staff member's enrolment in one course.
type TrainingRecord struct {
	ID             string     `bson:"id" json:"id"`
	StaffID        string     `bson:"staff_id" json:"staff_id"`
	CourseID       string     `bson:"course_id" json:"course_id"`
	Status         string     `bson:"status" json:"status"`
	EnrollmentDate time.Time  `bson:"enrollment_date" json:"enrollment_date"`
	CompletionDate *time.Time `bson:"completion_date,omitempty" json:"completion_date,omitempty"`
	Score          *float64   `bson:"score,omitempty" json:"score,omitempty"`
}

// PerformanceReview is a periodic staff appraisal.
type PerformanceReview struct {
	ID             string    `bson:"id" json:"id"`
	StaffID        string    `bson:"staff_id" json:"staff_id" binding:"required"`
	ReviewerID     string    `bson:"reviewer_id" json:"reviewer_id"`
	ReviewPeriod   string    `bson:"review_period" json:"review_period"`
	OverallScore   float64   `bson:"overall_score" json:"overall_score" binding:"gte=0,lte=100"`
	Strengths      []string  `bson:"strengths" json:"strengths"`
	Improvements   []string  `bson:"improvements" json:"improvements"`
	Goals          []string  `bson:"goals" json:"goals"`
	NextReviewDate time.Time `bson:"next_review_date" json:"next_review_date"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Violation is a single finding inside a compliance report.
type Violation struct {
	Type           string `bson:"type" json:"type"`
	Severity       string `bson:"severity" json:"severity"`
	Description    string `bson:"description" json:"description"`
	Recommendation string `bson:"recommendation,omitempty" json:"recommendation,omitempty"`
}

// ComplianceReport records the outcome of a compliance report run.
type ComplianceReport struct {
	ID                string         `bson:"id" json:"id"`
	ReportType        string         `bson:"report_type" json:"report_type"`
	Status            string         `bson:"status" json:"status"`
	GeneratedBy       string         `bson:"generated_by" json:"generated_by"`
	GeneratedAt       time.Time      `bson:"generated_at" json:"generated_at"`
	ReportPeriodStart time.Time      `bson:"report_period_start" json:"report_period_start"`
	ReportPeriodEnd   time.Time      `bson:"report_period_end" json:"report_period_end"`
	Summary           map[string]any `bson:"summary" json:"summary"`
	Violations        []Violation    `bson:"violations" json:"violations"`
	Recommendations   []string       `bson:"recommendations" json:"recommendations"`
	ComplianceScore   float64        `bson:"compliance_score" json:"compliance_score"`
}

// AnalyticsReport records the outcome of an analytics run.
type AnalyticsReport struct {
	ID              string         `bson:"id" json:"id"`
	AnalysisType    string         `bson:"analysis_type" json:"analysis_type"`
	TimePeriod      string         `bson:"time_period" json:"time_period"`
	AnalysisDate    time.Time      `bson:"analysis_date" json:"analysis_date"`
	Metrics         map[string]any `bson:"metrics" json:"metrics"`
	Insights        []string       `bson:"insights" json:"insights"`
	Recommendations []string       `bson:"recommendations" json:"recommendations"`
	ConfidenceScore float64        `bson:"confidence_score" json:"confidence_score"`
	GeneratedBy     string         `bson:"generated_by" json:"generated_by"`
}

// DataRetentionPolicy describes how long a data category is kept.
type DataRetentionPolicy struct {
	ID                  string     `bson:"id" json:"id"`
	PolicyName          string     `bson:"policy_name" json:"policy_name" binding:"required"`
	DataCategory        string     `bson:"data_category" json:"data_category" binding:"required"`
	RetentionPeriodDays int        `bson:"retention_period_days" json:"retention_period_days" binding:"gte=1"`
	ArchiveAfterDays    int        `bson:"archive_after_days" json:"archive_after_days"`
	AutoDelete          bool       `bson:"auto_delete" json:"auto_delete"`
	Status              string     `bson:"status" json:"status"`
	LegalBasis          string     `bson:"legal_basis" json:"legal_basis"`
	NextReviewDate      *time.Time `bson:"next_review_date,omitempty" json:"next_review_date,omitempty"`
	CreatedAt           time.Time  `bson:"created_at" json:"created_at"`
}

// Notification is an operator-facing message.
type Notification struct {
	ID            string     `bson:"id" json:"id"`
	Title         string     `bson:"title" json:"title" binding:"required"`
	Content       string     `bson:"content" json:"content" binding:"required"`
	Category      string     `bson:"category" json:"category"`
	Priority      string     `bson:"priority" json:"priority"`
	Status        string     `bson:"status" json:"status"`
	RecipientType string     `bson:"recipient_type" json:"recipient_type"`
	RecipientID   string     `bson:"recipient_id,omitempty" json:"recipient_id,omitempty"`
	Channels      []string   `bson:"channels" json:"channels"`
	TemplateID    string     `bson:"template_id,omitempty" json:"template_id,omitempty"`
	CreatedBy     string     `bson:"created_by" json:"created_by"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	ReadAt        *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`
}

// NotificationTemplate is a reusable notification body.
type NotificationTemplate struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" binding:"required"`
	Category  string    `bson:"category" json:"category"`
	Subject   string    `bson:"subject" json:"subject"`
	Body      string    `bson:"body" json:"body" binding:"required"`
	Variables []string  `bson:"variables" json:"variables"`
	Channels  []string  `bson:"channels" json:"channels"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SystemIntegration is an external system the back-office syncs with.
type SystemIntegration struct {
	ID         string     `bson:"id" json:"id"`
	Name       string     `bson:"name" json:"name" binding:"required"`
	Type       string     `bson:"type" json:"type" binding:"required"`
	Provider   string     `bson:"provider" json:"provider"`
	Status     string     `bson:"status" json:"status"`
	SyncStatus string     `bson:"sync_status,omitempty" json:"sync_status,omitempty"`
	LastSync   *time.Time `bson:"last_sync,omitempty" json:"last_sync,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}
