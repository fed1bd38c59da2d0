package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/spendplan/csp-backend/internal/auth"
	"github.com/spendplan/csp-backend/internal/engine"
	"github.com/spendplan/csp-backend/internal/model"
	"github.com/spendplan/csp-backend/internal/store"
)

// EvaluateGoalRequest carries an edited goal draft. Baseline, when present,
// is the latest report's bucket amounts for delta computation. AutoBalance
// asks the engine to fit guilt-free spending to the income first.
type EvaluateGoalRequest struct {
	Income      float64              `json:"income"`
	Amounts     model.BucketAmounts  `json:"bucket_amounts"`
	Baseline    *model.BucketAmounts `json:"baseline,omitempty"`
	AutoBalance bool                 `json:"auto_balance"`
}

// EvaluateGoalResponse returns the scored draft.
type EvaluateGoalResponse struct {
	Evaluation engine.GoalEvaluation `json:"evaluation"`
}

// SaveScenarioRequest persists the current draft under a name.
type SaveScenarioRequest struct {
	UserId        string              `json:"user_id"`
	Name          string              `json:"name"`
	TargetIncome  float64             `json:"target_income"`
	BucketAmounts model.BucketAmounts `json:"bucket_amounts"`
}

// ScenarioResponse wraps a single scenario document.
type ScenarioResponse struct {
	Scenario *model.Scenario `json:"scenario"`
}

// GetScenarioRequest fetches one scenario by id.
type GetScenarioRequest struct {
	ScenarioId string `json:"scenario_id"`
}

// ListScenariosRequest pages through the user's scenarios.
type ListScenariosRequest struct {
	UserId    string `json:"user_id"`
	PageSize  int32  `json:"page_size"`
	PageToken string `json:"page_token"`
}

// ListScenariosResponse returns one page of scenarios.
type ListScenariosResponse struct {
	Scenarios     []*model.Scenario `json:"scenarios"`
	NextPageToken string            `json:"next_page_token"`
}

// DeleteScenarioRequest removes one scenario by id.
type DeleteScenarioRequest struct {
	ScenarioId string `json:"scenario_id"`
}

// DeleteScenarioResponse is empty on success.
type DeleteScenarioResponse struct{}

// EvaluateGoal recomputes percentages, adherence and score for an edited
// draft. It touches no storage: the whole evaluation is engine math.
func (s *CSPService) EvaluateGoal(ctx context.Context, req *connect.Request[EvaluateGoalRequest]) (*connect.Response[EvaluateGoalResponse], error) {
	if _, err := auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	if req.Msg.Income < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("income must not be negative"))
	}

	amounts := req.Msg.Amounts
	if req.Msg.AutoBalance {
		amounts = engine.AutoBalance(req.Msg.Income, amounts)
	}
	eval := engine.EvaluateGoal(req.Msg.Income, amounts, req.Msg.Baseline)
	return connect.NewResponse(&EvaluateGoalResponse{Evaluation: eval}), nil
}

// SaveScenario persists a named scenario for the authenticated user.
func (s *CSPService) SaveScenario(ctx context.Context, req *connect.Request[SaveScenarioRequest]) (*connect.Response[ScenarioResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}
	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}

	scenario := &model.Scenario{
		Id:            uuid.New().String(),
		UserId:        claims.UID,
		Name:          req.Msg.Name,
		TargetIncome:  req.Msg.TargetIncome,
		BucketAmounts: req.Msg.BucketAmounts,
		CreatedAt:     s.now(),
	}
	if err := s.store.CreateScenario(ctx, scenario); err != nil {
		return nil, auth.WrapStoreError("create scenario", err)
	}

	s.logger.Info().Str("user", claims.UID).Str("scenario", scenario.Id).Msg("saved scenario")
	return connect.NewResponse(&ScenarioResponse{Scenario: scenario}), nil
}

// GetScenario returns one of the authenticated user's scenarios.
func (s *CSPService) GetScenario(ctx context.Context, req *connect.Request[GetScenarioRequest]) (*connect.Response[ScenarioResponse], error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	scenario, err := s.loadOwnedScenario(ctx, claims.UID, req.Msg.ScenarioId)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&ScenarioResponse{Scenario: scenario}), nil
}

// ListScenarios pages through the authenticated user's scenarios.
func (s *CSPService) ListScenarios(ctx context.Context, req *connect.Request[ListScenariosRequest]) (*connect.Response[ListScenariosResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}

	scenarios, nextToken, err := s.store.ListScenarios(ctx, claims.UID, req.Msg.PageSize, req.Msg.PageToken)
	if err != nil {
		return nil, auth.WrapStoreError("list scenarios", err)
	}
	return connect.NewResponse(&ListScenariosResponse{Scenarios: scenarios, NextPageToken: nextToken}), nil
}

// DeleteScenario removes one of the authenticated user's scenarios.
func (s *CSPService) DeleteScenario(ctx context.Context, req *connect.Request[DeleteScenarioRequest]) (*connect.Response[DeleteScenarioResponse], error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.loadOwnedScenario(ctx, claims.UID, req.Msg.ScenarioId); err != nil {
		return nil, err
	}
	if err := s.store.DeleteScenario(ctx, req.Msg.ScenarioId); err != nil {
		return nil, auth.WrapStoreError("delete scenario", err)
	}
	return connect.NewResponse(&DeleteScenarioResponse{}), nil
}

func (s *CSPService) loadOwnedScenario(ctx context.Context, userID, scenarioID string) (*model.Scenario, error) {
	if scenarioID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("scenario_id is required"))
	}
	scenario, err := s.store.GetScenario(ctx, scenarioID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("scenario not found"))
		}
		return nil, auth.WrapStoreError("get scenario", err)
	}
	if scenario.UserId != userID {
		return nil, connect.NewError(connect.CodePermissionDenied,
			fmt.Errorf("cannot access another user's resources"))
	}
	return scenario, nil
}
