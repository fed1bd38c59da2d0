// Package model defines the value types exchanged with the budgeting tool and
// persisted per user. Amounts on raw ledger records are milliunits (1/1000 of
// a major currency unit), matching the external API's native format; the
// engine converts to major units on entry.
package model

import "time"

// Milliunits is an integer amount in 1/1000 of the major currency unit.
// Negative values are outflows.
type Milliunits int64

// Major converts milliunits to major currency units.
func (m Milliunits) Major() float64 {
	return float64(m) / 1000
}

// AccountType is the budgeting tool's account type.
type AccountType string

const (
	AccountChecking       AccountType = "checking"
	AccountSavings        AccountType = "savings"
	AccountCredit         AccountType = "credit"
	AccountCreditCard     AccountType = "credit_card"
	AccountInvestment     AccountType = "investment"
	AccountOtherAsset     AccountType = "other_asset"
	AccountLoan           AccountType = "loan"
	AccountMortgage       AccountType = "mortgage"
	AccountOtherLiability AccountType = "other_liability"
)

// Frequency is a scheduled transaction's recurrence rule.
type Frequency string

const (
	FreqWeekly          Frequency = "weekly"
	FreqEveryOtherWeek  Frequency = "every_other_week"
	FreqTwiceAMonth     Frequency = "twice_a_month"
	FreqEvery4Weeks     Frequency = "every_4_weeks"
	FreqMonthly         Frequency = "monthly"
	FreqEveryOtherMonth Frequency = "every_other_month"
	FreqEvery3Months    Frequency = "every_3_months"
	FreqEvery4Months    Frequency = "every_4_months"
	FreqTwiceAYear      Frequency = "twice_a_year"
	FreqYearly          Frequency = "yearly"
	FreqEveryOtherYear  Frequency = "every_other_year"
)

// Transaction is a raw ledger record as relayed from the budgeting tool.
// A record with SubTransactions is a split parent; its amount equals the sum
// of its children.
type Transaction struct {
	Id                string           `json:"id"`
	Date              time.Time        `json:"date"`
	Amount            Milliunits       `json:"amount"`
	PayeeName         string           `json:"payee_name"`
	CategoryId        string           `json:"category_id"`
	CategoryName      string           `json:"category_name"`
	AccountId         string           `json:"account_id"`
	TransferAccountId string           `json:"transfer_account_id"`
	Approved          bool             `json:"approved"`
	ParentId          string           `json:"parent_transaction_id"`
	SubTransactions   []SubTransaction `json:"subtransactions,omitempty"`
}

// SubTransaction is one leg of a split transaction.
type SubTransaction struct {
	Id                string     `json:"id"`
	Amount            Milliunits `json:"amount"`
	PayeeName         string     `json:"payee_name"`
	CategoryId        string     `json:"category_id"`
	CategoryName      string     `json:"category_name"`
	TransferAccountId string     `json:"transfer_account_id"`
}

// Category is a budget category. Balance is the available amount carried by
// the latest month snapshot; Budgeted is the per-month assigned amount. Both
// are optional (nil when the snapshot has no entry for the category).
type Category struct {
	Id        string      `json:"id"`
	Name      string      `json:"name"`
	GroupId   string      `json:"category_group_id"`
	GroupName string      `json:"category_group_name"`
	Balance   *Milliunits `json:"balance,omitempty"`
	Budgeted  *Milliunits `json:"budgeted,omitempty"`
}

// Account is a budgeting tool account. Off-budget accounts are tracking
// accounts: their activity never reaches budget categories.
type Account struct {
	Id       string      `json:"id"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	OnBudget bool        `json:"on_budget"`
	Closed   bool        `json:"closed"`
}

// MonthCategory is one category's row in a month snapshot.
type MonthCategory struct {
	CategoryId string     `json:"category_id"`
	Activity   Milliunits `json:"activity"`
	Budgeted   Milliunits `json:"budgeted"`
	Balance    Milliunits `json:"balance"`
}

// MonthSnapshot is the budgeting tool's own monthly rollup, keyed by a
// YYYY-MM month key.
type MonthSnapshot struct {
	Month        string          `json:"month"`
	Income       Milliunits      `json:"income"`
	Budgeted     Milliunits      `json:"budgeted"`
	Activity     Milliunits      `json:"activity"`
	ToBeBudgeted Milliunits      `json:"to_be_budgeted"`
	Categories   []MonthCategory `json:"categories"`
}

// ScheduledTransaction is a recurring template. DateNext is the next
// occurrence the tool will materialize.
type ScheduledTransaction struct {
	Id           string     `json:"id"`
	PayeeName    string     `json:"payee_name"`
	CategoryId   string     `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Frequency    Frequency  `json:"frequency"`
	DateNext     time.Time  `json:"date_next"`
	Amount       Milliunits `json:"amount"`
}
