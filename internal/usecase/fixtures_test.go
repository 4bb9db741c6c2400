package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/casino-admin/internal/model"
	"github.com/example/casino-admin/internal/pagination"
	"github.com/example/casino-admin/internal/store"
)

func TestLoadSampleDataReplacesCollections(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	require.NoError(t, uc.cols.Members.Insert(ctx, &model.Member{ID: "stale", IsActive: true}))

	counts, err := uc.LoadSampleData(ctx)
	require.NoError(t, err)

	assert.Equal(t, 100, counts[store.MembersCollection])
	assert.Equal(t, 50, counts[store.GamingSessionsCollection])
	assert.Equal(t, 15, counts[store.StaffCollection])

	_, err = uc.cols.Members.FindByID(ctx, "stale")
	assert.ErrorIs(t, err, store.ErrNotFound)

	n, err := uc.cols.Members.Count(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)
}

func TestSampleDataFeedsReports(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil, wednesdayNoon)
	_, err := uc.LoadSampleData(ctx)
	require.NoError(t, err)

	metrics, err := uc.DashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), metrics.TotalMembers)
	assert.Equal(t, int64(25), metrics.MembersByTier[model.TierVIP])
	assert.NotEmpty(t, metrics.TopGames)

	kyc, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportKYCCompliance})
	require.NoError(t, err)
	assert.Equal(t, 90.0, kyc.Summary["verification_rate"])
	assert.Empty(t, kyc.Violations)

	retention, err := uc.GenerateComplianceReport(ctx, testActor, ComplianceRequest{ReportType: ReportDataRetention})
	require.NoError(t, err)
	assert.Equal(t, 100.0, retention.ComplianceScore)

	members, err := uc.ListMembers(ctx, MemberFilter{}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, pagination.Page{Page: 1, Pages: 10}, members.Page)
	assert.Equal(t, MaskedValue, members.Items[0].NICPassport)
}
