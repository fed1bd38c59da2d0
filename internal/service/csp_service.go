// Package service exposes the CSP engine, settings store and scenario store
// as Connect procedures. Handlers authenticate via context claims, validate
// arguments, and delegate: the engine does the math, the store does the I/O.
package service

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"

	"github.com/spendplan/csp-backend/internal/auth"
	"github.com/spendplan/csp-backend/internal/engine"
	"github.com/spendplan/csp-backend/internal/store"
)

// CSPService implements the csp.v1.CSPService procedures.
type CSPService struct {
	store  store.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewCSPService creates the service over the given store.
func NewCSPService(st store.Store, logger zerolog.Logger) *CSPService {
	return &CSPService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// ComputeReportRequest carries the period selector plus the raw input
// snapshot relayed from the budgeting tool. The settings document is loaded
// server-side for the authenticated user, never trusted from the client.
type ComputeReportRequest struct {
	UserId string        `json:"user_id"`
	Period int           `json:"period"`
	Inputs engine.Inputs `json:"inputs"`
}

// ComputeReportResponse wraps the engine's report.
type ComputeReportResponse struct {
	Report *engine.Report `json:"report"`
}

// ComputeReport runs the CSP transform for the authenticated user.
func (s *CSPService) ComputeReport(ctx context.Context, req *connect.Request[ComputeReportRequest]) (*connect.Response[ComputeReportResponse], error) {
	claims, err := auth.RequireUserAccess(ctx, req.Msg.UserId)
	if err != nil {
		return nil, err
	}

	settings, err := s.store.GetSettings(ctx, claims.UID)
	if err != nil {
		return nil, auth.WrapStoreError("get settings", err)
	}

	report, err := engine.Compute(req.Msg.Inputs, settings, req.Msg.Period, s.now())
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("period must be one of 0, 3, 6, 12, 24 or 999: %w", err))
	}

	s.logger.Debug().
		Str("user", claims.UID).
		Int("period", req.Msg.Period).
		Int("transactions", len(req.Msg.Inputs.Transactions)).
		Int("score", report.Score).
		Msg("computed CSP report")

	return connect.NewResponse(&ComputeReportResponse{Report: report}), nil
}
