package model

import "time"

// Settings is the per-user persisted document that parameterizes the CSP
// engine. A missing document is equivalent to the zero value.
//
// CategoryMappings values are stored as plain strings rather than Bucket so
// that an entry written by an older or newer client survives storage; the
// engine drops unknown bucket ids with a diagnostic count.
//
// NOTE: Firestore serializes by Go field name (PascalCase); the json tags are
// the wire format only.
type Settings struct {
	ExcludedPayees            []string          `json:"excluded_payees"`
	ExcludedIncomeCategories  []string          `json:"excluded_income_categories"`
	ExcludedExpenseCategories []string          `json:"excluded_expense_categories"`
	CategoryMappings          map[string]string `json:"category_mappings"`
}

// HasPayeeExcluded reports whether the payee name is in the exclusion set.
func (s *Settings) HasPayeeExcluded(payee string) bool {
	return containsString(s.ExcludedPayees, payee)
}

// HasIncomeCategoryExcluded reports whether the category id is excluded from
// income aggregation.
func (s *Settings) HasIncomeCategoryExcluded(categoryID string) bool {
	return containsString(s.ExcludedIncomeCategories, categoryID)
}

// HasExpenseCategoryExcluded reports whether the category id is excluded from
// expense aggregation.
func (s *Settings) HasExpenseCategoryExcluded(categoryID string) bool {
	return containsString(s.ExcludedExpenseCategories, categoryID)
}

// TogglePayee flips the payee's membership in the exclusion set and returns
// the new membership state.
func (s *Settings) TogglePayee(payee string) bool {
	s.ExcludedPayees, _ = toggleString(s.ExcludedPayees, payee)
	return containsString(s.ExcludedPayees, payee)
}

// ToggleIncomeCategory flips the category's membership in the income
// exclusion set and returns the new membership state.
func (s *Settings) ToggleIncomeCategory(categoryID string) bool {
	s.ExcludedIncomeCategories, _ = toggleString(s.ExcludedIncomeCategories, categoryID)
	return containsString(s.ExcludedIncomeCategories, categoryID)
}

// ToggleExpenseCategory flips the category's membership in the expense
// exclusion set and returns the new membership state.
func (s *Settings) ToggleExpenseCategory(categoryID string) bool {
	s.ExcludedExpenseCategories, _ = toggleString(s.ExcludedExpenseCategories, categoryID)
	return containsString(s.ExcludedExpenseCategories, categoryID)
}

// SetCategoryBucket records a bucket override for the category.
func (s *Settings) SetCategoryBucket(categoryID string, bucket Bucket) {
	if s.CategoryMappings == nil {
		s.CategoryMappings = make(map[string]string)
	}
	s.CategoryMappings[categoryID] = string(bucket)
}

// ClearCategoryBucket removes any bucket override for the category.
func (s *Settings) ClearCategoryBucket(categoryID string) {
	delete(s.CategoryMappings, categoryID)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// toggleString removes v if present, appends it otherwise. The second return
// is true when v was added.
func toggleString(list []string, v string) ([]string, bool) {
	for i, s := range list {
		if s == v {
			return append(list[:i], list[i+1:]...), false
		}
	}
	return append(list, v), true
}

// Scenario is a named, persisted goal projection: a target income plus a
// hand-edited amount per bucket.
type Scenario struct {
	Id            string        `json:"id"`
	UserId        string        `json:"user_id"`
	Name          string        `json:"name"`
	TargetIncome  float64       `json:"target_income"`
	BucketAmounts BucketAmounts `json:"bucket_amounts"`
	CreatedAt     time.Time     `json:"created_at"`
}
