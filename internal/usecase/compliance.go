package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

// Compliance report types with a recipe.
const (
	ReportAuditTrail    = "audit_trail"
	ReportKYCCompliance = "kyc_compliance"
	ReportDataRetention = "data_retention"
)

const (
	kycRateThreshold      = 90.0
	kycScoreCap           = 80.0
	retentionScoreCap     = 60.0
	highRiskShareLimit    = 10.0
	highRiskScoreCap      = 85.0
	noAuditActivityCap    = 90.0
	defaultReportPeriod   = 30
	defaultComplianceBase = 100.0
)

// Period is a closed reporting interval.
type Period struct {
	Start time.Time
	End   time.Time
}

type complianceOutcome struct {
	Summary         map[string]any
	Violations      []model.Violation
	Recommendations []string
	Score           float64
}

type complianceRecipe func(ctx context.Context, uc *AdminUseCase, period Period) (complianceOutcome, error)

// complianceRecipes maps a report type to its fetch-and-evaluate step.
var complianceRecipes = map[string]complianceRecipe{
	ReportAuditTrail: func(ctx context.Context, uc *AdminUseCase, period Period) (complianceOutcome, error) {
		logs, err := uc.cols.AuditLogs.Find(ctx, bson.M{
			"timestamp": bson.M{"$gte": period.Start, "$lte": period.End},
		}, store.FindOptions{})
		if err != nil {
			return complianceOutcome{}, err
		}
		return evaluateAuditTrail(logs), nil
	},
	ReportKYCCompliance: func(ctx context.Context, uc *AdminUseCase, _ Period) (complianceOutcome, error) {
		total, err := uc.cols.Members.Count(ctx, bson.M{"is_active": true})
		if err != nil {
			return complianceOutcome{}, err
		}
		verified, err := uc.cols.Members.Count(ctx, bson.M{"is_active": true, "kyc_verified": true})
		if err != nil {
			return complianceOutcome{}, err
		}
		return evaluateKYC(total, verified), nil
	},
	ReportDataRetention: func(ctx context.Context, uc *AdminUseCase, _ Period) (complianceOutcome, error) {
		policies, err := uc.cols.RetentionPolicies.Find(ctx, bson.M{}, store.FindOptions{})
		if err != nil {
			return complianceOutcome{}, err
		}
		return evaluateRetention(policies), nil
	},
}

func evaluateAuditTrail(logs []model.AuditLog) complianceOutcome {
	admins := map[string]bool{}
	byAction := map[string]int64{}
	var highRisk int64
	for _, l := range logs {
		admins[l.AdminUserID] = true
		byAction[l.Action]++
		if RiskBand(RiskScore(l.Action, l.Resource, l.Details)) == RiskHigh {
			highRisk++
		}
	}
	total := int64(len(logs))
	share := round2(percentage(highRisk, total))
	out := complianceOutcome{
		Summary: map[string]any{
			"total_actions":       total,
			"unique_admins":       len(admins),
			"high_risk_actions":   highRisk,
			"high_risk_share":     share,
			"actions_by_type":     byAction,
			"most_common_actions": firstN(topCounts(byAction), 5),
		},
		Violations: []model.Violation{},
		Recommendations: []string{
			"Review high-risk administrative actions weekly",
			"Restrict bulk operations to SuperAdmin accounts",
			"Export the audit trail to immutable storage monthly",
		},
		Score: defaultComplianceBase,
	}
	if total == 0 {
		out.Violations = append(out.Violations, model.Violation{
			Type:           "no_audit_activity",
			Severity:       "medium",
			Description:    "No administrative actions were recorded in the reporting period",
			Recommendation: "Verify that audit logging is enabled on every admin route",
		})
		out.Score = min(out.Score, noAuditActivityCap)
	} else if share > highRiskShareLimit {
		out.Violations = append(out.Violations, model.Violation{
			Type:           "excessive_high_risk_actions",
			Severity:       "high",
			Description:    fmt.Sprintf("%.2f%% of administrative actions were high risk", share),
			Recommendation: "Investigate high-risk actions and tighten role assignments",
		})
		out.Score = min(out.Score, highRiskScoreCap)
	}
	return out
}

func evaluateKYC(total, verified int64) complianceOutcome {
	rate := round2(percentage(verified, total))
	out := complianceOutcome{
		Summary: map[string]any{
			"total_members":      total,
			"verified_members":   verified,
			"unverified_members": total - verified,
			"verification_rate":  rate,
		},
		Violations: []model.Violation{},
		Recommendations: []string{
			"Complete KYC verification for all active members",
			"Block gaming activity for members with expired identity documents",
			"Schedule quarterly KYC refresh for VIP members",
		},
		Score: defaultComplianceBase,
	}
	if total > 0 && rate < kycRateThreshold {
		out.Violations = append(out.Violations, model.Violation{
			Type:           "low_kyc_verification",
			Severity:       "high",
			Description:    fmt.Sprintf("KYC verification rate is %.2f%%, below the required %.0f%%", rate, kycRateThreshold),
			Recommendation: "Contact unverified members to complete identity verification",
		})
		out.Score = min(out.Score, kycScoreCap)
	}
	return out
}

func evaluateRetention(policies []model.DataRetentionPolicy) complianceOutcome {
	var active, autoDelete int64
	categories := map[string]bool{}
	for _, p := range policies {
		if p.Status != "active" {
			continue
		}
		active++
		categories[p.DataCategory] = true
		if p.AutoDelete {
			autoDelete++
		}
	}
	covered := make([]string, 0, len(categories))
	for c := range categories {
		covered = append(covered, c)
	}
	sort.Strings(covered)

	out := complianceOutcome{
		Summary: map[string]any{
			"total_policies":       int64(len(policies)),
			"active_policies":      active,
			"auto_delete_policies": autoDelete,
			"categories_covered":   covered,
		},
		Violations: []model.Violation{},
		Recommendations: []string{
			"Define retention periods for every personal data category",
			"Enable automatic deletion where the legal basis allows it",
			"Review retention policies annually",
		},
		Score: defaultComplianceBase,
	}
	if active == 0 {
		out.Violations = append(out.Violations, model.Violation{
			Type:           "no_retention_policies",
			Severity:       "critical",
			Description:    "No active data retention policies are configured",
			Recommendation: "Create retention policies for member, gaming and audit data",
		})
		out.Score = min(out.Score, retentionScoreCap)
	}
	return out
}

// ComplianceRequest selects a report type and optional period.
type ComplianceRequest struct {
	ReportType  string     `json:"report_type" binding:"required"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
}

// GenerateComplianceReport runs the recipe for req.ReportType and persists
// the result. Types without a recipe produce an empty report scoring 100.
func (uc *AdminUseCase) GenerateComplianceReport(ctx context.Context, actor Actor, req ComplianceRequest) (*model.ComplianceReport, error) {
	now := uc.now()
	period := Period{Start: now.AddDate(0, 0, -defaultReportPeriod), End: now}
	if req.PeriodStart != nil {
		period.Start = req.PeriodStart.UTC()
	}
	if req.PeriodEnd != nil {
		period.End = req.PeriodEnd.UTC()
	}
	if period.End.Before(period.Start) {
		return nil, invalidf("period_end precedes period_start")
	}

	outcome := complianceOutcome{
		Summary:         map[string]any{},
		Violations:      []model.Violation{},
		Recommendations: []string{},
		Score:           defaultComplianceBase,
	}
	if recipe, ok := complianceRecipes[req.ReportType]; ok {
		var err error
		if outcome, err = recipe(ctx, uc, period); err != nil {
			return nil, uc.storeError("usecase.compliance."+req.ReportType, actor, err)
		}
	}

	report := &model.ComplianceReport{
		ID:                uuid.NewString(),
		ReportType:        req.ReportType,
		Status:            "completed",
		GeneratedBy:       actor.UserID,
		GeneratedAt:       now,
		ReportPeriodStart: period.Start,
		ReportPeriodEnd:   period.End,
		Summary:           outcome.Summary,
		Violations:        outcome.Violations,
		Recommendations:   outcome.Recommendations,
		ComplianceScore:   outcome.Score,
	}
	if err := uc.cols.ComplianceReports.Insert(ctx, report); err != nil {
		return nil, uc.storeError("usecase.save_compliance_report", actor, err)
	}
	uc.recordAction(ctx, actor, "generate", "compliance_report", report.ID, map[string]any{
		"report_type":      report.ReportType,
		"compliance_score": report.ComplianceScore,
		"violations":       len(report.Violations),
	})
	return report, nil
}

// ListComplianceReports returns reports, newest first.
func (uc *AdminUseCase) ListComplianceReports(ctx context.Context, reportType string, p pagination.Params) (ListResult[model.ComplianceReport], error) {
	filter := bson.M{}
	setIfPresent(filter, "report_type", reportType)
	return listPage(ctx, uc.cols.ComplianceReports, filter, desc("generated_at"), p)
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
