// Package engine implements the Conscious Spending Plan transform: a pure
// function from a snapshot of a user's ledger plus their persisted settings
// to a structured report of income, bucketed spending, target adherence and
// discrepancy diagnostics. The engine performs no I/O and never fails during
// aggregation; every recoverable anomaly is folded into the report's
// diagnostics section.
package engine

import (
	"time"

	"github.com/spendplan/csp-backend/internal/model"
)

// Inputs is the snapshot the engine consumes. All amounts are raw milliunits
// as relayed from the budgeting tool.
type Inputs struct {
	Transactions          []model.Transaction          `json:"transactions"`
	Categories            []model.Category             `json:"categories"`
	Accounts              []model.Account              `json:"accounts"`
	MonthSnapshots        []model.MonthSnapshot        `json:"month_snapshots"`
	ScheduledTransactions []model.ScheduledTransaction `json:"scheduled_transactions"`
}

// Report is the engine's return value. All amounts are major units.
type Report struct {
	Period               PeriodInfo                      `json:"period"`
	TotalIncome          float64                         `json:"total_income"`
	MonthlyIncome        float64                         `json:"monthly_income"`
	Buckets              map[model.Bucket]*BucketSummary `json:"buckets"`
	MonthlyData          []MonthlyData                   `json:"monthly_data"`
	IncomePayees         []IncomeSource                  `json:"income_payees"`
	IncomeCategories     []IncomeSource                  `json:"income_categories"`
	AllExpenseCategories []CategorySummary               `json:"all_expense_categories"`
	Diagnostics          Diagnostics                     `json:"diagnostics"`
	Score                int                             `json:"score"`
	IsOnTrack            bool                            `json:"is_on_track"`
	Suggestions          []string                        `json:"suggestions"`
}

// PeriodInfo describes the resolved analysis window.
type PeriodInfo struct {
	Selector int       `json:"selector"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Months   []string  `json:"months"`
	Length   int       `json:"length"`
}

// BucketSummary is one bucket's slice of the report.
type BucketSummary struct {
	Amount     float64           `json:"amount"`
	Percentage int               `json:"percentage"`
	IsOnTarget bool              `json:"is_on_target"`
	Categories []CategorySummary `json:"categories"`
}

// CategorySummary is a per-category rollup within a bucket. CustomBucket is
// set only when the user has overridden the inferred bucket.
type CategorySummary struct {
	CategoryId       string       `json:"category_id"`
	Name             string       `json:"name"`
	MonthlyAmount    float64      `json:"monthly_amount"`
	TransactionCount int          `json:"transaction_count"`
	InferredBucket   model.Bucket `json:"inferred_bucket"`
	CustomBucket     model.Bucket `json:"custom_bucket,omitempty"`
}

// IncomeSource is a per-payee or per-category income rollup. Excluded sources
// are returned alongside active ones so the caller can render toggles.
type IncomeSource struct {
	Id               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	Total            float64 `json:"total"`
	Monthly          float64 `json:"monthly"`
	TransactionCount int     `json:"transaction_count"`
	IsExcluded       bool    `json:"is_excluded"`
}

// MonthlyData is one month's per-bucket spending.
type MonthlyData struct {
	Month string `json:"month"`
	Label string `json:"label"`
	model.BucketAmounts
}

// TxnSample is a truncated transaction reference carried in diagnostics.
type TxnSample struct {
	PayeeName string    `json:"payee_name"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
}

// SkipSummary tallies the transactions deliberately excluded for one reason.
type SkipSummary struct {
	Count   int         `json:"count"`
	Total   float64     `json:"total"`
	Samples []TxnSample `json:"samples"`
}

// ScheduledProjection records how one recurring template was projected onto
// the window.
type ScheduledProjection struct {
	Id          string          `json:"id"`
	PayeeName   string          `json:"payee_name"`
	Frequency   model.Frequency `json:"frequency"`
	Occurrences int             `json:"occurrences"`
	Projected   float64         `json:"projected"`
}

// ZeroActivityCategory records a savings category whose budgeted amount was
// folded into the savings bucket in place of missing activity.
type ZeroActivityCategory struct {
	CategoryId      string  `json:"category_id"`
	Name            string  `json:"name"`
	MonthlyBudgeted float64 `json:"monthly_budgeted"`
	Added           float64 `json:"added"`
}

// PositiveNonIncome reports inflows that land in expense categories: refund
// candidates that the budgeting tool counts as income but the engine does not.
type PositiveNonIncome struct {
	Total   float64     `json:"total"`
	Count   int         `json:"count"`
	Samples []TxnSample `json:"samples"`
}

// Diagnostics explains every quantity the engine excluded, substituted or
// could not attribute, so the reconciler can account for gaps against the
// budgeting tool's own totals.
type Diagnostics struct {
	Skipped                map[SkipReason]*SkipSummary `json:"skipped"`
	IncomeByCategory       map[string]float64          `json:"income_by_category"`
	PositiveNonIncome      PositiveNonIncome           `json:"positive_non_income_transactions"`
	ScheduledIncome        []ScheduledProjection       `json:"scheduled_income"`
	BudgetedSavingsAdded   float64                     `json:"budgeted_savings_added"`
	CategoriesWithZeroTxns []ZeroActivityCategory      `json:"categories_with_zero_txns"`
	SavingsAdjustment      float64                     `json:"savings_adjustment"`
	ExcludedIncomeTotal    float64                     `json:"excluded_income_total"`
	ExcludedExpenseTotal   float64                     `json:"excluded_expense_total"`
	DroppedSettingsEntries int                         `json:"dropped_settings_entries"`
	Reconciliation         Reconciliation              `json:"reconciliation"`
}

// Reconciliation re-derives the budgeting tool's own month totals and names
// the residual the engine cannot attribute.
type Reconciliation struct {
	ToolIncome            float64 `json:"tool_income"`
	ToolExpenses          float64 `json:"tool_expenses"`
	MonthCount            int     `json:"month_count"`
	SumOfCategoryExpenses float64 `json:"sum_of_category_expenses"`
	CategorySumDelta      float64 `json:"category_sum_delta"`

	AppExpenses           float64 `json:"app_expenses"`
	BudgetedSavingsAdded  float64 `json:"budgeted_savings_added"`
	SkippedExpensesTotal  float64 `json:"skipped_expenses_total"`
	UnexplainedExpenseGap float64 `json:"unexplained_expense_gap"`

	AppIncome              float64 `json:"app_income"`
	TrackingIncome         float64 `json:"tracking_income"`
	ExcludedIncome         float64 `json:"excluded_income"`
	StartingBalanceIncome  float64 `json:"starting_balance_income"`
	ReconciliationIncome   float64 `json:"reconciliation_income"`
	UnexplainedIncomeGap   float64 `json:"unexplained_income_gap"`
	PositiveNonIncomeTotal float64 `json:"positive_non_income_total"`
	GapExplainedByRefunds  bool    `json:"gap_explained_by_refunds"`
}
