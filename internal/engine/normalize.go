package engine

import (
	"strings"
	"time"

	"github.com/spendplan/csp-backend/internal/model"
)

// Kind classifies an effective record after normalization.
type Kind int

const (
	KindIncome Kind = iota
	KindExpense
	KindSkipped
)

// SkipReason tags a transaction the engine deliberately excludes. The tags
// are wire-stable diagnostic keys.
type SkipReason string

const (
	SkipCreditCardPayment     SkipReason = "credit_card_payment"
	SkipUncategorizedTransfer SkipReason = "uncategorized_transfer"
	SkipTrackingAccount       SkipReason = "tracking_account"
	SkipStartingBalance       SkipReason = "starting_balance_income"
	SkipReconciliation        SkipReason = "reconciliation_income"
	SkipTrackingIncome        SkipReason = "tracking_account_income"
	SkipFutureDatedIncome     SkipReason = "future_dated_income"
	SkipTransferIncome        SkipReason = "transfer_income"

	skipNone SkipReason = ""
)

const (
	startingBalancePayee      = "Starting Balance"
	reconciliationPayee       = "Reconciliation Balance Adjustment"
	maxDiagnosticSamples      = 5
	maxScheduledProjectionLen = 1000
)

// Effective is one record of the canonical stream: split children expanded,
// amounts in major units, derived flags attached.
type Effective struct {
	Id                string
	Date              time.Time
	Month             string
	Amount            float64
	PayeeName         string
	CategoryId        string
	CategoryName      string
	AccountId         string
	TransferAccountId string

	IsTransfer          bool
	IsCreditCardPayment bool
	IsTrackingAccount   bool
	IsStartingBalance   bool
	IsReconciliation    bool
	IsFutureDated       bool

	Kind       Kind
	SkipReason SkipReason
}

// normalize converts raw transactions into the canonical effective stream.
// Records dated before the window start are dropped; records dated after the
// window end survive as skipped future-dated diagnostics rather than
// disappearing silently. Split parents are replaced by their children, each
// with its own category and amount. The normalizer never consults the
// settings document.
func normalize(txns []model.Transaction, accounts []model.Account, period PeriodInfo) []Effective {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.Id] = a
	}

	var out []Effective
	for _, t := range txns {
		if t.Date.Before(period.Start) {
			continue
		}
		if len(t.SubTransactions) > 0 {
			for _, sub := range t.SubTransactions {
				payee := sub.PayeeName
				if payee == "" {
					payee = t.PayeeName
				}
				out = append(out, makeEffective(
					sub.Id, t.Date, sub.Amount, payee, sub.CategoryId, sub.CategoryName,
					t.AccountId, sub.TransferAccountId, byID, period.End,
				))
			}
			continue
		}
		out = append(out, makeEffective(
			t.Id, t.Date, t.Amount, t.PayeeName, t.CategoryId, t.CategoryName,
			t.AccountId, t.TransferAccountId, byID, period.End,
		))
	}
	return out
}

func makeEffective(id string, date time.Time, amount model.Milliunits, payee, categoryID, categoryName, accountID, transferAccountID string, accounts map[string]model.Account, now time.Time) Effective {
	e := Effective{
		Id:                id,
		Date:              date,
		Month:             monthKey(date),
		Amount:            amount.Major(),
		PayeeName:         payee,
		CategoryId:        categoryID,
		CategoryName:      categoryName,
		AccountId:         accountID,
		TransferAccountId: transferAccountID,
	}

	e.IsTransfer = transferAccountID != ""
	if e.IsTransfer {
		if target, ok := accounts[transferAccountID]; ok {
			e.IsCreditCardPayment = target.Type == model.AccountCredit || target.Type == model.AccountCreditCard
		}
	}
	// A record whose account is missing from the snapshot is treated as
	// on-budget rather than failing.
	if acct, ok := accounts[accountID]; ok {
		e.IsTrackingAccount = !acct.OnBudget
	}
	e.IsStartingBalance = strings.EqualFold(payee, startingBalancePayee)
	e.IsReconciliation = strings.EqualFold(payee, reconciliationPayee)
	e.IsFutureDated = date.After(now)

	e.Kind, e.SkipReason = classifyEffective(e)
	return e
}

// classifyEffective applies the skip rules in precedence order, then falls
// through to the income/expense candidate rules.
func classifyEffective(e Effective) (Kind, SkipReason) {
	switch {
	case e.IsTrackingAccount && e.Amount > 0:
		return KindSkipped, SkipTrackingIncome
	case e.IsTrackingAccount:
		return KindSkipped, SkipTrackingAccount
	case e.IsFutureDated && e.Amount > 0:
		return KindSkipped, SkipFutureDatedIncome
	case e.IsFutureDated:
		return KindSkipped, skipNone
	case e.IsCreditCardPayment:
		return KindSkipped, SkipCreditCardPayment
	case e.IsTransfer && e.Amount > 0:
		return KindSkipped, SkipTransferIncome
	case e.IsTransfer:
		return KindSkipped, SkipUncategorizedTransfer
	case e.Amount > 0 && e.IsStartingBalance:
		return KindSkipped, SkipStartingBalance
	case e.Amount > 0 && e.IsReconciliation:
		return KindSkipped, SkipReconciliation
	case e.Amount > 0:
		return KindIncome, skipNone
	case e.Amount < 0:
		return KindExpense, skipNone
	default:
		// Zero-amount records carry no spending signal.
		return KindSkipped, skipNone
	}
}
