package usecase

import (
	"context"
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

func seedKYCMembers(t *testing.T, uc *AdminUseCase, total, verified int) {
	t.Helper()
	members := make([]model.Member, 0, total+1)
	for i := 0; i < total; i++ {
		members = append(members, model.Member{
			ID:          fmt.Sprintf("m%03d", i),
			IsActive:    true,
			KYCVerified: i < verified,
			Tier:        model.TierRuby,
		})
	}
	// Inactive members never count towards the rate.
	members = append(members, model.Member{ID: "inactive", IsActive: false})
	require.NoError(t, uc.cols.Members.InsertMany(context.Background(), members))
}

func TestComplianceKYCBelowThreshold(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	seedKYCMembers(t, uc, 100, 85)

	report, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportKYCCompliance})
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "low_kyc_verification", report.Violations[0].Type)
	assert.Equal(t, "high", report.Violations[0].Severity)
	assert.Equal(t, 80.0, report.ComplianceScore)
	assert.Equal(t, 85.0, report.Summary["verification_rate"])
	assert.Equal(t, int64(15), report.Summary["unverified_members"])
	assert.Equal(t, "completed", report.Status)
	assert.Equal(t, testActor.UserID, report.GeneratedBy)
	assert.True(t, report.ReportPeriodStart.Equal(wednesdayNoon.AddDate(0, 0, -30)))
	assert.True(t, report.ReportPeriodEnd.Equal(wednesdayNoon))
	assert.NotEmpty(t, report.Recommendations)

	stored, err := uc.cols.ComplianceReports.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.ComplianceScore)
	require.Len(t, stored.Violations, 1)

	audit, err := uc.cols.AuditLogs.FindOne(ctx, bson.M{"resource": "compliance_report"})
	require.NoError(t, err)
	assert.Equal(t, "generate", audit.Action)
	assert.Equal(t, report.ID, audit.ResourceID)
}

func TestComplianceKYCAtThreshold(t *testing.T) {
	uc := newTestUseCase(t, nil, wednesdayNoon)
	seedKYCMembers(t, uc, 10, 9)

	report, err := uc.GenerateComplianceReport(context.Background(), testActor, ComplianceRequest{ReportType: ReportKYCCompliance})
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 100.0, report.ComplianceScore)
}

func TestComplianceKYCWithoutMembers(t *testing.T) {
	report := evaluateKYC(0, 0)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 100.0, report.Score)
	assert.Equal(t, 0.0, report.Summary["verification_rate"])
}

func TestComplianceRetentionWithoutPolicies(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.RetentionPolicies.Insert(ctx, &model.DataRetentionPolicy{
		ID: "p1", PolicyName: "Old", DataCategory: "member_data", Status: "inactive",
	}))

	report, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportDataRetention})
	require.NoError(t, err)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "no_retention_policies", report.Violations[0].Type)
	assert.Equal(t, "critical", report.Violations[0].Severity)
	assert.Equal(t, 60.0, report.ComplianceScore)
}

func TestComplianceRetentionWithPolicies(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.RetentionPolicies.InsertMany(ctx, []model.DataRetentionPolicy{
		{ID: "p1", DataCategory: "member_data", Status: "active", AutoDelete: true},
		{ID: "p2", DataCategory: "audit_logs", Status: "active"},
	}))

	report, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportDataRetention})
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 100.0, report.ComplianceScore)
	assert.Equal(t, []string{"audit_logs", "member_data"}, report.Summary["categories_covered"])
}

func TestComplianceAuditTrail(t *testing.T) {
	t.Run("no activity", func(t *testing.T) {
		out := evaluateAuditTrail(nil)
		require.Len(t, out.Violations, 1)
		assert.Equal(t, "no_audit_activity", out.Violations[0].Type)
		assert.Equal(t, 90.0, out.Score)
	})

	t.Run("excessive high risk share", func(t *testing.T) {
		logs := []model.AuditLog{
			{AdminUserID: "u1", Action: "delete", Resource: "member"},
			{AdminUserID: "u1", Action: "view", Resource: "reward"},
			{AdminUserID: "u2", Action: "view", Resource: "reward"},
		}
		out := evaluateAuditTrail(logs)
		require.Len(t, out.Violations, 1)
		assert.Equal(t, "excessive_high_risk_actions", out.Violations[0].Type)
		assert.Equal(t, 85.0, out.Score)
		assert.Equal(t, 2, out.Summary["unique_admins"])
		assert.Equal(t, []string{"view", "delete"}, out.Summary["most_common_actions"])
	})

	t.Run("period bounds the logs", func(t *testing.T) {
		ctx := context.Background()
		uc := newTestUseCase(t, nil, wednesdayNoon)
		require.NoError(t, uc.cols.AuditLogs.InsertMany(ctx, []model.AuditLog{
			{ID: "in", Timestamp: wednesdayNoon.AddDate(0, 0, -2), Action: "view", Resource: "reward"},
			{ID: "out", Timestamp: wednesdayNoon.AddDate(0, 0, -60), Action: "delete", Resource: "member"},
		}))

		report, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportAuditTrail})
		require.NoError(t, err)
		assert.Empty(t, report.Violations)
		assert.Equal(t, 100.0, report.ComplianceScore)
		assert.Equal(t, int64(1), report.Summary["total_actions"])
	})
}

func TestComplianceUnknownTypeScoresFull(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)

	report, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: "aml_screening"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.ComplianceScore)
	assert.Empty(t, report.Violations)
	assert.Empty(t, report.Summary)

	n, err := uc.cols.ComplianceReports.Count(ctx, bson.M{"report_type": "aml_screening"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestComplianceExplicitPeriod(t *testing.T) {
	uc := newTestUseCase(t, nil, wednesdayNoon)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	report, err := uc.GenerateComplianceReport(context.Background(), testActor, ComplianceRequest{
		ReportType: ReportAuditTrail, PeriodStart: &start, PeriodEnd: &end,
	})
	require.NoError(t, err)
	assert.True(t, report.ReportPeriodStart.Equal(start))
	assert.True(t, report.ReportPeriodEnd.Equal(end))

	_, err = uc.GenerateComplianceReport(context.Background(), testActor, ComplianceRequest{
		ReportType: ReportAuditTrail, PeriodStart: &end, PeriodEnd: &start,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListComplianceReports(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	for _, rt := range []string{ReportKYCCompliance, ReportDataRetention, ReportKYCCompliance} {
		_, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: rt})
		require.NoError(t, err)
	}

	got, err := uc.ListComplianceReports(ctx, ReportKYCCompliance, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Total)
	for _, r := range got.Items {
		assert.Equal(t, ReportKYCCompliance, r.ReportType)
	}
}

// failingMembersBackend fails every member count.
type failingMembersBackend struct {
	store.Backend
}

func (b failingMembersBackend) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	if collection == store.MembersCollection {
		return 0, fmt.Errorf("connection reset")
	}
	return b.Backend.Count(ctx, collection, filter)
}

func TestComplianceStoreFailureIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	backend := failingMembersBackend{Backend: store.NewMemoryBackend()}
	uc := newTestUseCase(t, backend, wednesdayNoon)

	_, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportKYCCompliance})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usecase.compliance.kyc_compliance")

	n, err := uc.cols.ComplianceReports.Count(ctx, bson.M{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
