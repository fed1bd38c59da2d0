package service

import (
	"context"
	"io"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendplan/csp-backend/internal/auth"
	"github.com/spendplan/csp-backend/internal/engine"
	"github.com/spendplan/csp-backend/internal/logger"
	"github.com/spendplan/csp-backend/internal/model"
	"github.com/spendplan/csp-backend/internal/store"
)

var serviceNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*CSPService, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := NewCSPService(st, logger.NewWithWriter(io.Discard))
	svc.now = func() time.Time { return serviceNow }
	return svc, st
}

func authedContext(userID string) context.Context {
	return auth.WithUserClaims(context.Background(), &auth.UserClaims{
		UID:   userID,
		Email: userID + "@example.com",
	})
}

func testInputs() engine.Inputs {
	d := func(month time.Month, day int) time.Time {
		return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
	}
	return engine.Inputs{
		Accounts: []model.Account{
			{Id: "acct-checking", Name: "Checking", Type: model.AccountChecking, OnBudget: true},
		},
		Categories: []model.Category{
			{Id: "cat-inflow", Name: "Inflow: Ready to Assign", GroupName: "Inflow"},
			{Id: "cat-rent", Name: "Rent"},
			{Id: "cat-dining", Name: "Dining Out"},
		},
		Transactions: []model.Transaction{
			{Id: "t1", Date: d(time.April, 1), Amount: 5_000_000, PayeeName: "Acme Corp", CategoryId: "cat-inflow", CategoryName: "Inflow: Ready to Assign", AccountId: "acct-checking"},
			{Id: "t2", Date: d(time.April, 3), Amount: -1_500_000, PayeeName: "Main St Property", CategoryId: "cat-rent", CategoryName: "Rent", AccountId: "acct-checking"},
			{Id: "t3", Date: d(time.May, 9), Amount: -300_000, PayeeName: "Corner Bistro", CategoryId: "cat-dining", CategoryName: "Dining Out", AccountId: "acct-checking"},
		},
	}
}

func TestComputeReport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	resp, err := svc.ComputeReport(ctx, connect.NewRequest(&ComputeReportRequest{
		UserId: "user-1",
		Period: 3,
		Inputs: testInputs(),
	}))
	require.NoError(t, err)
	require.NotNil(t, resp.Msg.Report)

	report := resp.Msg.Report
	assert.InDelta(t, 5000, report.TotalIncome, 0.001)
	assert.InDelta(t, 1500, report.Buckets[model.BucketFixedCosts].Amount, 0.001)
	assert.InDelta(t, 300, report.Buckets[model.BucketGuiltFree].Amount, 0.001)
	assert.Equal(t, []string{"2025-04", "2025-05", "2025-06"}, report.Period.Months)
}

func TestComputeReportUsesStoredSettings(t *testing.T) {
	svc, st := newTestService(t)
	ctx := authedContext("user-1")

	settings := &model.Settings{
		CategoryMappings: map[string]string{"cat-dining": string(model.BucketFixedCosts)},
	}
	require.NoError(t, st.SaveSettings(ctx, "user-1", settings))

	resp, err := svc.ComputeReport(ctx, connect.NewRequest(&ComputeReportRequest{
		UserId: "user-1",
		Period: 3,
		Inputs: testInputs(),
	}))
	require.NoError(t, err)

	report := resp.Msg.Report
	assert.InDelta(t, 1800, report.Buckets[model.BucketFixedCosts].Amount, 0.001)
	assert.Zero(t, report.Buckets[model.BucketGuiltFree].Amount)
}

func TestComputeReportInvalidPeriod(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	_, err := svc.ComputeReport(ctx, connect.NewRequest(&ComputeReportRequest{
		UserId: "user-1",
		Period: 7,
		Inputs: testInputs(),
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestComputeReportRequiresMatchingUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	_, err := svc.ComputeReport(ctx, connect.NewRequest(&ComputeReportRequest{
		UserId: "user-2",
		Period: 3,
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestComputeReportUnauthenticated(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ComputeReport(context.Background(), connect.NewRequest(&ComputeReportRequest{
		UserId: "user-1",
		Period: 3,
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}
