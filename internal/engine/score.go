package engine

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spendplan/csp-backend/internal/model"
)

// Targets are rule-derived, not user-configurable: fixed costs at most 60%,
// investments at least 10%, savings at least 5%, guilt-free at most 35%.
type bucketTarget struct {
	Max int
	Min int
}

var bucketTargets = map[model.Bucket]bucketTarget{
	model.BucketFixedCosts:  {Max: 60},
	model.BucketInvestments: {Min: 10},
	model.BucketSavings:     {Min: 5},
	model.BucketGuiltFree:   {Max: 35},
}

// maxBucketScore is each bucket's equal share of the 100-point scale.
const maxBucketScore = 25.0

// ScoreResult is the output of the scoring function, shared by the report
// path and the goal projector.
type ScoreResult struct {
	Percentages map[model.Bucket]int  `json:"percentages"`
	OnTarget    map[model.Bucket]bool `json:"on_target"`
	Score       int                   `json:"score"`
	IsOnTrack   bool                  `json:"is_on_track"`
	Suggestions []string              `json:"suggestions"`
}

// scoreAmounts computes the 0-100 CSP score for a set of bucket amounts
// against a total income over the same span. With no income every percentage
// is zero.
func scoreAmounts(totalIncome float64, amounts model.BucketAmounts) ScoreResult {
	res := ScoreResult{
		Percentages: make(map[model.Bucket]int, len(model.Buckets)),
		OnTarget:    make(map[model.Bucket]bool, len(model.Buckets)),
	}

	var score float64
	res.IsOnTrack = true
	printer := message.NewPrinter(language.English)

	for _, b := range model.Buckets {
		pct := percentOf(amounts.Get(b), totalIncome)
		res.Percentages[b] = pct

		target := bucketTargets[b]
		onTarget := false
		switch b {
		case model.BucketFixedCosts, model.BucketGuiltFree:
			onTarget = pct <= target.Max
			if onTarget {
				score += maxBucketScore
			} else {
				score += math.Max(0, maxBucketScore-float64(pct-target.Max))
			}
		case model.BucketInvestments, model.BucketSavings:
			onTarget = pct >= target.Min
			if onTarget {
				score += maxBucketScore
			} else {
				score += math.Min(maxBucketScore, float64(pct)/float64(target.Min)*maxBucketScore)
			}
		}
		res.OnTarget[b] = onTarget
		if !onTarget {
			res.IsOnTrack = false
			res.Suggestions = append(res.Suggestions, suggestionFor(printer, b, pct, target, amounts.Get(b), totalIncome))
		}
	}

	res.Score = int(math.Round(score))
	return res
}

// percentOf rounds half away from zero to an integer percentage; zero income
// yields zero.
func percentOf(amount, totalIncome float64) int {
	if totalIncome <= 0 {
		return 0
	}
	return int(math.Round(amount / totalIncome * 100))
}

func suggestionFor(p *message.Printer, b model.Bucket, pct int, target bucketTarget, amount, totalIncome float64) string {
	switch b {
	case model.BucketFixedCosts:
		over := amount - totalIncome*float64(target.Max)/100
		return p.Sprintf("Fixed costs are %d%% of income; trim about $%.0f to get under %d%%.", pct, over, target.Max)
	case model.BucketGuiltFree:
		over := amount - totalIncome*float64(target.Max)/100
		return p.Sprintf("Guilt-free spending is %d%% of income; cut roughly $%.0f to stay under %d%%.", pct, over, target.Max)
	case model.BucketInvestments:
		short := totalIncome*float64(target.Min)/100 - amount
		return p.Sprintf("Investments are %d%% of income; add about $%.0f to reach the %d%% floor.", pct, short, target.Min)
	case model.BucketSavings:
		short := totalIncome*float64(target.Min)/100 - amount
		return p.Sprintf("Savings are %d%% of income; set aside about $%.0f more to reach %d%%.", pct, short, target.Min)
	}
	return ""
}
