package model

// Bucket is one of the four Conscious Spending Plan buckets. The identifiers
// are wire-stable: they appear in persisted settings documents and in every
// report payload.
type Bucket string

const (
	BucketFixedCosts  Bucket = "fixed_costs"
	BucketInvestments Bucket = "investments"
	BucketSavings     Bucket = "savings"
	BucketGuiltFree   Bucket = "guilt_free"
)

// Buckets lists the buckets in display order.
var Buckets = []Bucket{BucketFixedCosts, BucketInvestments, BucketSavings, BucketGuiltFree}

// Valid reports whether b is a member of the closed bucket set.
func (b Bucket) Valid() bool {
	switch b {
	case BucketFixedCosts, BucketInvestments, BucketSavings, BucketGuiltFree:
		return true
	}
	return false
}

// BucketAmounts holds a dollar amount per bucket.
type BucketAmounts struct {
	FixedCosts  float64 `json:"fixed_costs"`
	Investments float64 `json:"investments"`
	Savings     float64 `json:"savings"`
	GuiltFree   float64 `json:"guilt_free"`
}

// Get returns the amount for the given bucket.
func (a BucketAmounts) Get(b Bucket) float64 {
	switch b {
	case BucketFixedCosts:
		return a.FixedCosts
	case BucketInvestments:
		return a.Investments
	case BucketSavings:
		return a.Savings
	case BucketGuiltFree:
		return a.GuiltFree
	}
	return 0
}

// Set assigns the amount for the given bucket.
func (a *BucketAmounts) Set(b Bucket, v float64) {
	switch b {
	case BucketFixedCosts:
		a.FixedCosts = v
	case BucketInvestments:
		a.Investments = v
	case BucketSavings:
		a.Savings = v
	case BucketGuiltFree:
		a.GuiltFree = v
	}
}

// Sum returns the total across all four buckets.
func (a BucketAmounts) Sum() float64 {
	return a.FixedCosts + a.Investments + a.Savings + a.GuiltFree
}
