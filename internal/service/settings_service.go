package service

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/spendplan/csp-backend/internal/auth"
	"github.com/spendplan/csp-backend/internal/model"
)

// GetSettingsRequest asks for the authenticated user's settings document.
type GetSettingsRequest struct {
	UserId string `json:"user_id"`
}

// SettingsResponse returns the settings document after a read or write.
type SettingsResponse struct {
	Settings *model.Settings `json:"settings"`
}

// TogglePayeeRequest flips a payee's income-exclusion membership.
type TogglePayeeRequest struct {
	UserId    string `json:"user_id"`
	PayeeName string `json:"payee_name"`
}

// ToggleCategoryRequest flips a category id in one of the exclusion sets.
type ToggleCategoryRequest struct {
	UserId     string `json:"user_id"`
	CategoryId string `json:"category_id"`
}

// ToggleResponse reports the new membership state plus the updated document.
type ToggleResponse struct {
	Excluded bool            `json:"excluded"`
	Settings *model.Settings `json:"settings"`
}

// SetCategoryBucketRequest assigns a bucket override for a category.
type SetCategoryBucketRequest struct {
	UserId     string `json:"user_id"`
	CategoryId string `json:"category_id"`
	Bucket     string `json:"bucket"`
}

// ClearCategoryBucketRequest removes a category's bucket override.
type ClearCategoryBucketRequest struct {
	UserId     string `json:"user_id"`
	CategoryId string `json:"category_id"`
}

// GetSettings returns the user's settings; a never-written document reads as
// empty.
func (s *CSPService) GetSettings(ctx context.Context, req *connect.Request[GetSettingsRequest]) (*connect.Response[SettingsResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}

	settings, err := s.store.GetSettings(ctx, claims.UID)
	if err != nil {
		return nil, auth.WrapStoreError("get settings", err)
	}
	return connect.NewResponse(&SettingsResponse{Settings: settings}), nil
}

// TogglePayee flips the payee's membership in the excluded-payees set.
func (s *CSPService) TogglePayee(ctx context.Context, req *connect.Request[TogglePayeeRequest]) (*connect.Response[ToggleResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}
	if req.Msg.PayeeName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("payee_name is required"))
	}

	return s.mutateSettings(ctx, claims.UID, func(settings *model.Settings) bool {
		return settings.TogglePayee(req.Msg.PayeeName)
	})
}

// ToggleIncomeCategory flips the category in the income exclusion set.
func (s *CSPService) ToggleIncomeCategory(ctx context.Context, req *connect.Request[ToggleCategoryRequest]) (*connect.Response[ToggleResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}
	if req.Msg.CategoryId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("category_id is required"))
	}

	return s.mutateSettings(ctx, claims.UID, func(settings *model.Settings) bool {
		return settings.ToggleIncomeCategory(req.Msg.CategoryId)
	})
}

// ToggleExpenseCategory flips the category in the expense exclusion set.
func (s *CSPService) ToggleExpenseCategory(ctx context.Context, req *connect.Request[ToggleCategoryRequest]) (*connect.Response[ToggleResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}
	if req.Msg.CategoryId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("category_id is required"))
	}

	return s.mutateSettings(ctx, claims.UID, func(settings *model.Settings) bool {
		return settings.ToggleExpenseCategory(req.Msg.CategoryId)
	})
}

// SetCategoryBucket records a bucket override. Unknown bucket ids are
// rejected here; ids that slip into storage some other way are dropped by
// the engine with a diagnostic count.
func (s *CSPService) SetCategoryBucket(ctx context.Context, req *connect.Request[SetCategoryBucketRequest]) (*connect.Response[SettingsResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}
	if req.Msg.CategoryId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("category_id is required"))
	}
	bucket := model.Bucket(req.Msg.Bucket)
	if !bucket.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("bucket must be one of fixed_costs, investments, savings or guilt_free"))
	}

	settings, err := s.store.GetSettings(ctx, claims.UID)
	if err != nil {
		return nil, auth.WrapStoreError("get settings", err)
	}
	settings.SetCategoryBucket(req.Msg.CategoryId, bucket)
	if err := s.store.SaveSettings(ctx, claims.UID, settings); err != nil {
		return nil, auth.WrapStoreError("save settings", err)
	}
	return connect.NewResponse(&SettingsResponse{Settings: settings}), nil
}

// ClearCategoryBucket removes a category's bucket override. Clearing an
// absent override is a no-op.
func (s *CSPService) ClearCategoryBucket(ctx context.Context, req *connect.Request[ClearCategoryBucketRequest]) (*connect.Response[SettingsResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}
	if req.Msg.CategoryId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("category_id is required"))
	}

	settings, err := s.store.GetSettings(ctx, claims.UID)
	if err != nil {
		return nil, auth.WrapStoreError("get settings", err)
	}
	settings.ClearCategoryBucket(req.Msg.CategoryId)
	if err := s.store.SaveSettings(ctx, claims.UID, settings); err != nil {
		return nil, auth.WrapStoreError("save settings", err)
	}
	return connect.NewResponse(&SettingsResponse{Settings: settings}), nil
}

func (s *CSPService) mutateSettings(ctx context.Context, userID string, mutate func(*model.Settings) bool) (*connect.Response[ToggleResponse], error) {
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, auth.WrapStoreError("get settings", err)
	}
	excluded := mutate(settings)
	if err := s.store.SaveSettings(ctx, userID, settings); err != nil {
		return nil, auth.WrapStoreError("save settings", err)
	}
	return connect.NewResponse(&ToggleResponse{Excluded: excluded, Settings: settings}), nil
}
