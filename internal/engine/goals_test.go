package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendplan/csp-backend/internal/model"
)

func TestEvaluateGoal(t *testing.T) {
	amounts := model.BucketAmounts{
		FixedCosts:  5_000,
		Investments: 1_500,
		Savings:     1_000,
		GuiltFree:   2_500,
	}
	baseline := &model.BucketAmounts{
		FixedCosts:  5_500,
		Investments: 1_000,
		Savings:     1_000,
		GuiltFree:   2_500,
	}

	eval := EvaluateGoal(10_000, amounts, baseline)
	assert.Equal(t, 100, eval.Score)
	assert.True(t, eval.IsOnTrack)
	assert.InDelta(t, -500, eval.Deltas.FixedCosts, 0.001)
	assert.InDelta(t, 500, eval.Deltas.Investments, 0.001)
	assert.Zero(t, eval.Deltas.Savings)
}

func TestEvaluateGoalWithoutBaseline(t *testing.T) {
	eval := EvaluateGoal(10_000, model.BucketAmounts{FixedCosts: 8_000}, nil)
	assert.Equal(t, model.BucketAmounts{}, eval.Deltas)
	assert.False(t, eval.IsOnTrack)
	require.NotEmpty(t, eval.Suggestions)
}

func TestAutoBalance(t *testing.T) {
	t.Run("guilt free absorbs the remainder", func(t *testing.T) {
		out := AutoBalance(10_000, model.BucketAmounts{
			FixedCosts:  5_000,
			Investments: 1_000,
			Savings:     1_000,
			GuiltFree:   9_999,
		})
		assert.InDelta(t, 3_000, out.GuiltFree, 0.001)
		assert.InDelta(t, 10_000, out.Sum(), 0.001)
	})

	t.Run("overcommitted buckets scale down proportionally", func(t *testing.T) {
		out := AutoBalance(6_000, model.BucketAmounts{
			FixedCosts:  6_000,
			Investments: 3_000,
			Savings:     3_000,
			GuiltFree:   500,
		})
		assert.InDelta(t, 3_000, out.FixedCosts, 0.001)
		assert.InDelta(t, 1_500, out.Investments, 0.001)
		assert.InDelta(t, 1_500, out.Savings, 0.001)
		assert.Zero(t, out.GuiltFree)
		assert.InDelta(t, 6_000, out.Sum(), 0.001)
	})

	t.Run("zero income zeroes everything", func(t *testing.T) {
		out := AutoBalance(0, model.BucketAmounts{FixedCosts: 2_000, GuiltFree: 100})
		assert.Zero(t, out.Sum())
	})

	t.Run("negative income is treated as zero", func(t *testing.T) {
		out := AutoBalance(-500, model.BucketAmounts{FixedCosts: 2_000})
		assert.Zero(t, out.Sum())
	})
}
