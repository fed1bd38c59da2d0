package service

import (
	"context"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendplan/csp-backend/internal/model"
)

func TestEvaluateGoal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	resp, err := svc.EvaluateGoal(ctx, connect.NewRequest(&EvaluateGoalRequest{
		Income: 10_000,
		Amounts: model.BucketAmounts{
			FixedCosts: 5_000, Investments: 1_500, Savings: 1_000, GuiltFree: 2_500,
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Msg.Evaluation.Score)
	assert.True(t, resp.Msg.Evaluation.IsOnTrack)
}

func TestEvaluateGoalAutoBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	resp, err := svc.EvaluateGoal(ctx, connect.NewRequest(&EvaluateGoalRequest{
		Income:      10_000,
		AutoBalance: true,
		Amounts: model.BucketAmounts{
			FixedCosts: 5_000, Investments: 1_500, Savings: 1_000, GuiltFree: 0,
		},
	}))
	require.NoError(t, err)
	assert.InDelta(t, 2_500, resp.Msg.Evaluation.Amounts.GuiltFree, 0.001)
	assert.InDelta(t, 10_000, resp.Msg.Evaluation.Amounts.Sum(), 0.001)
}

func TestEvaluateGoalRejectsNegativeIncome(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.EvaluateGoal(authedContext("user-1"), connect.NewRequest(&EvaluateGoalRequest{Income: -1}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestEvaluateGoalRequiresAuth(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.EvaluateGoal(context.Background(), connect.NewRequest(&EvaluateGoalRequest{Income: 1}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestScenarioLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	saved, err := svc.SaveScenario(ctx, connect.NewRequest(&SaveScenarioRequest{
		UserId:       "user-1",
		Name:         "Raise next year",
		TargetIncome: 12_000,
		BucketAmounts: model.BucketAmounts{
			FixedCosts: 6_000, Investments: 2_000, Savings: 1_000, GuiltFree: 3_000,
		},
	}))
	require.NoError(t, err)
	scenario := saved.Msg.Scenario
	require.NotNil(t, scenario)
	assert.NotEmpty(t, scenario.Id)
	assert.Equal(t, "user-1", scenario.UserId)
	assert.Equal(t, serviceNow, scenario.CreatedAt)

	got, err := svc.GetScenario(ctx, connect.NewRequest(&GetScenarioRequest{ScenarioId: scenario.Id}))
	require.NoError(t, err)
	assert.Equal(t, scenario, got.Msg.Scenario)

	list, err := svc.ListScenarios(ctx, connect.NewRequest(&ListScenariosRequest{UserId: "user-1"}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Scenarios, 1)
	assert.Empty(t, list.Msg.NextPageToken)

	_, err = svc.DeleteScenario(ctx, connect.NewRequest(&DeleteScenarioRequest{ScenarioId: scenario.Id}))
	require.NoError(t, err)

	_, err = svc.GetScenario(ctx, connect.NewRequest(&GetScenarioRequest{ScenarioId: scenario.Id}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestScenarioOwnership(t *testing.T) {
	svc, _ := newTestService(t)

	saved, err := svc.SaveScenario(authedContext("user-1"), connect.NewRequest(&SaveScenarioRequest{
		UserId: "user-1",
		Name:   "Private plan",
	}))
	require.NoError(t, err)
	id := saved.Msg.Scenario.Id

	intruder := authedContext("user-2")
	_, err = svc.GetScenario(intruder, connect.NewRequest(&GetScenarioRequest{ScenarioId: id}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = svc.DeleteScenario(intruder, connect.NewRequest(&DeleteScenarioRequest{ScenarioId: id}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	// The owner can still read it afterwards.
	got, err := svc.GetScenario(authedContext("user-1"), connect.NewRequest(&GetScenarioRequest{ScenarioId: id}))
	require.NoError(t, err)
	assert.Equal(t, id, got.Msg.Scenario.Id)
}

func TestSaveScenarioValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SaveScenario(authedContext("user-1"), connect.NewRequest(&SaveScenarioRequest{UserId: "user-1"}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestListScenariosPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := authedContext("user-1")

	for i := 0; i < 5; i++ {
		_, err := svc.SaveScenario(ctx, connect.NewRequest(&SaveScenarioRequest{
			UserId: "user-1",
			Name:   fmt.Sprintf("Plan %d", i),
		}))
		require.NoError(t, err)
	}

	var total int
	token := ""
	pages := 0
	for {
		resp, err := svc.ListScenarios(ctx, connect.NewRequest(&ListScenariosRequest{
			UserId: "user-1", PageSize: 2, PageToken: token,
		}))
		require.NoError(t, err)
		total += len(resp.Msg.Scenarios)
		pages++
		if resp.Msg.NextPageToken == "" {
			break
		}
		token = resp.Msg.NextPageToken
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 3, pages)
}
