package engine

import "github.com/spendplan/csp-backend/internal/model"

// GoalEvaluation is the goal projector's output: the same percentages,
// adherence flags and score the report carries, recomputed from user-edited
// scalars, plus per-bucket deltas against a baseline (typically the latest
// report's bucket amounts).
type GoalEvaluation struct {
	Income  float64             `json:"income"`
	Amounts model.BucketAmounts `json:"bucket_amounts"`
	Deltas  model.BucketAmounts `json:"deltas"`
	ScoreResult
}

// EvaluateGoal scores an edited draft. When baseline is non-nil, Deltas
// holds amount − baseline per bucket.
func EvaluateGoal(income float64, amounts model.BucketAmounts, baseline *model.BucketAmounts) GoalEvaluation {
	eval := GoalEvaluation{
		Income:      income,
		Amounts:     amounts,
		ScoreResult: scoreAmounts(income, amounts),
	}
	if baseline != nil {
		for _, b := range model.Buckets {
			eval.Deltas.Set(b, amounts.Get(b)-baseline.Get(b))
		}
	}
	return eval
}

// AutoBalance fits the draft to the income: guilt-free absorbs whatever the
// other three buckets leave over. When fixed costs, investments and savings
// alone exceed the income they are scaled down proportionally to sum to it
// and guilt-free drops to zero.
func AutoBalance(income float64, amounts model.BucketAmounts) model.BucketAmounts {
	if income < 0 {
		income = 0
	}
	committed := amounts.FixedCosts + amounts.Investments + amounts.Savings
	if committed <= income {
		amounts.GuiltFree = income - committed
		return amounts
	}

	scale := 0.0
	if committed > 0 {
		scale = income / committed
	}
	amounts.FixedCosts *= scale
	amounts.Investments *= scale
	amounts.Savings *= scale
	amounts.GuiltFree = 0
	return amounts
}
