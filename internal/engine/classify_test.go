package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spendplan/csp-backend/internal/model"
)

func TestInferBucket(t *testing.T) {
	tests := []struct {
		name string
		want model.Bucket
	}{
		{"Rent", model.BucketFixedCosts},
		{"Mortgage Payment", model.BucketFixedCosts},
		{"Car Insurance", model.BucketFixedCosts},
		{"Internet & Phone", model.BucketFixedCosts},
		{"Streaming Subscriptions", model.BucketFixedCosts},
		{"Groceries", model.BucketFixedCosts},
		{"401k Contribution", model.BucketInvestments},
		{"Roth IRA", model.BucketInvestments},
		{"Brokerage Transfers", model.BucketInvestments},
		{"Retirement", model.BucketInvestments},
		{"Emergency Fund", model.BucketSavings},
		{"Savings Goal", model.BucketSavings},
		{"Vacation Fund", model.BucketSavings},
		{"House Fund", model.BucketSavings},
		{"Dining Out", model.BucketGuiltFree},
		{"Hobbies", model.BucketGuiltFree},
		{"", model.BucketGuiltFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferBucket(tt.name))
		})
	}
}

func TestInferBucketRuleOrder(t *testing.T) {
	// Fixed-cost keywords win over later rule sets when a name matches both.
	assert.Equal(t, model.BucketFixedCosts, inferBucket("Renters Insurance Savings"))
}

func TestClassifierOverrideWins(t *testing.T) {
	settings := &model.Settings{
		CategoryMappings: map[string]string{"cat-rent": string(model.BucketGuiltFree)},
	}
	cls := newClassifier(testCategories(), settings)

	b, custom := cls.bucketFor("cat-rent", "Rent")
	assert.Equal(t, model.BucketGuiltFree, b)
	assert.True(t, custom)

	// A category without an override still follows the keyword rules.
	b, custom = cls.bucketFor("cat-401k", "401k Contribution")
	assert.Equal(t, model.BucketInvestments, b)
	assert.False(t, custom)
}

func TestClassifierDropsInvalidMappings(t *testing.T) {
	settings := &model.Settings{
		CategoryMappings: map[string]string{
			"cat-a": "fun_money",
			"cat-b": "",
			"cat-c": string(model.BucketSavings),
		},
	}
	cls := newClassifier(nil, settings)
	assert.Equal(t, 2, cls.droppedEntries)

	b, custom := cls.bucketFor("cat-c", "Whatever")
	assert.Equal(t, model.BucketSavings, b)
	assert.True(t, custom)
}

func TestClassifierResolvesNameFromSnapshot(t *testing.T) {
	cls := newClassifier(testCategories(), nil)
	// The record carries no name; the snapshot's category name drives inference.
	b, _ := cls.bucketFor("cat-emergency", "")
	assert.Equal(t, model.BucketSavings, b)
}

func TestIsIncomeCategory(t *testing.T) {
	cls := newClassifier(testCategories(), nil)

	tests := []struct {
		name         string
		categoryID   string
		categoryName string
		want         bool
	}{
		{"empty id is income side", "", "", true},
		{"ready to assign by name", "cat-x", "Inflow: Ready to Assign", true},
		{"inflow substring", "cat-x", "Paycheck Inflow", true},
		{"inflow group from snapshot", "cat-inflow", "", true},
		{"regular expense category", "cat-dining", "Dining Out", false},
		{"unknown id with plain name", "cat-mystery", "Gadgets", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cls.isIncomeCategory(tt.categoryID, tt.categoryName))
		})
	}
}
