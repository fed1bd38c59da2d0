package engine

import (
	"strings"

	"github.com/spendplan/csp-backend/internal/model"
)

// Keyword rules are part of the engine contract: a category whose name
// contains one of these (case-insensitive) lands in the corresponding bucket
// unless the user has overridden it. Earlier rule sets win.
var (
	fixedCostKeywords = []string{
		"rent", "mortgage", "insurance", "utilities", "internet", "phone", "subscription", "grocer",
	}
	investmentKeywords = []string{
		"401k", "ira", "brokerage", "invest", "retirement",
	}
	savingsKeywords = []string{
		"emergency", "saving", "vacation fund", "house fund",
	}
)

const inflowGroupName = "inflow"

// classifier assigns each category to exactly one bucket and identifies
// income categories. Overrides come from the settings document; entries with
// unknown bucket ids are dropped and counted, never fatal.
type classifier struct {
	overrides       map[string]model.Bucket
	droppedEntries  int
	categoriesByID  map[string]model.Category
	incomeTagByName map[string]bool
}

func newClassifier(categories []model.Category, settings *model.Settings) *classifier {
	c := &classifier{
		overrides:      make(map[string]model.Bucket),
		categoriesByID: make(map[string]model.Category, len(categories)),
	}
	for _, cat := range categories {
		c.categoriesByID[cat.Id] = cat
	}
	if settings != nil {
		for id, raw := range settings.CategoryMappings {
			b := model.Bucket(raw)
			if !b.Valid() {
				c.droppedEntries++
				continue
			}
			c.overrides[id] = b
		}
	}
	return c
}

// bucketFor returns the category's bucket and whether it came from a user
// override rather than the keyword rules.
func (c *classifier) bucketFor(categoryID, categoryName string) (model.Bucket, bool) {
	if b, ok := c.overrides[categoryID]; ok {
		return b, true
	}
	name := categoryName
	if name == "" {
		if cat, ok := c.categoriesByID[categoryID]; ok {
			name = cat.Name
		}
	}
	return inferBucket(name), false
}

// inferBucket applies the keyword rules in order; anything unmatched is
// guilt-free spending.
func inferBucket(name string) model.Bucket {
	lower := strings.ToLower(name)
	for _, kw := range fixedCostKeywords {
		if strings.Contains(lower, kw) {
			return model.BucketFixedCosts
		}
	}
	for _, kw := range investmentKeywords {
		if strings.Contains(lower, kw) {
			return model.BucketInvestments
		}
	}
	for _, kw := range savingsKeywords {
		if strings.Contains(lower, kw) {
			return model.BucketSavings
		}
	}
	return model.BucketGuiltFree
}

// isIncomeCategory reports whether the category belongs to the budgeting
// tool's inflow side. Income categories are never bucketed; they participate
// only in income aggregation. An empty category id is treated as income-side:
// uncategorized inflows are paychecks awaiting assignment, not refunds.
func (c *classifier) isIncomeCategory(categoryID, categoryName string) bool {
	if categoryID == "" {
		return true
	}
	name := categoryName
	groupName := ""
	if cat, ok := c.categoriesByID[categoryID]; ok {
		if name == "" {
			name = cat.Name
		}
		groupName = cat.GroupName
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "ready to assign") || strings.Contains(lower, "inflow") {
		return true
	}
	return strings.EqualFold(groupName, inflowGroupName)
}

// category returns the category record for an id, if the snapshot has one.
func (c *classifier) category(categoryID string) (model.Category, bool) {
	cat, ok := c.categoriesByID[categoryID]
	return cat, ok
}
