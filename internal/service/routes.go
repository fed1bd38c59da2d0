package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/spendplan/csp-backend/internal/rpc"
)

// Procedure names, Connect-style: /<package>.<Service>/<Method>.
const (
	ProcedureComputeReport         = "/csp.v1.CSPService/ComputeReport"
	ProcedureGetSettings           = "/csp.v1.CSPService/GetSettings"
	ProcedureTogglePayee           = "/csp.v1.CSPService/TogglePayee"
	ProcedureToggleIncomeCategory  = "/csp.v1.CSPService/ToggleIncomeCategory"
	ProcedureToggleExpenseCategory = "/csp.v1.CSPService/ToggleExpenseCategory"
	ProcedureSetCategoryBucket     = "/csp.v1.CSPService/SetCategoryBucket"
	ProcedureClearCategoryBucket   = "/csp.v1.CSPService/ClearCategoryBucket"
	ProcedureEvaluateGoal          = "/csp.v1.CSPService/EvaluateGoal"
	ProcedureSaveScenario          = "/csp.v1.CSPService/SaveScenario"
	ProcedureGetScenario           = "/csp.v1.CSPService/GetScenario"
	ProcedureListScenarios         = "/csp.v1.CSPService/ListScenarios"
	ProcedureDeleteScenario        = "/csp.v1.CSPService/DeleteScenario"
)

// RegisterHandlers mounts every CSPService procedure on the mux.
func (s *CSPService) RegisterHandlers(mux *http.ServeMux, opts ...connect.HandlerOption) {
	mux.Handle(rpc.NewUnaryHandler(ProcedureComputeReport, s.ComputeReport, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureGetSettings, s.GetSettings, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureTogglePayee, s.TogglePayee, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureToggleIncomeCategory, s.ToggleIncomeCategory, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureToggleExpenseCategory, s.ToggleExpenseCategory, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureSetCategoryBucket, s.SetCategoryBucket, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureClearCategoryBucket, s.ClearCategoryBucket, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureEvaluateGoal, s.EvaluateGoal, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureSaveScenario, s.SaveScenario, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureGetScenario, s.GetScenario, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureListScenarios, s.ListScenarios, opts...))
	mux.Handle(rpc.NewUnaryHandler(ProcedureDeleteScenario, s.DeleteScenario, opts...))
}
