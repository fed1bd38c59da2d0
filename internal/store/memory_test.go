package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendplan/csp-backend/internal/model"
)

func TestMemoryStoreSettings(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	t.Run("missing document reads as empty", func(t *testing.T) {
		s, err := m.GetSettings(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, s.ExcludedPayees)
		assert.Empty(t, s.CategoryMappings)
	})

	t.Run("round trip", func(t *testing.T) {
		in := &model.Settings{
			ExcludedPayees:   []string{"Side Gig"},
			CategoryMappings: map[string]string{"cat-1": string(model.BucketSavings)},
		}
		require.NoError(t, m.SaveSettings(ctx, "user-1", in))

		out, err := m.GetSettings(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("reads are isolated from later mutation", func(t *testing.T) {
		out, err := m.GetSettings(ctx, "user-1")
		require.NoError(t, err)
		out.TogglePayee("Another Payee")
		out.SetCategoryBucket("cat-2", model.BucketFixedCosts)

		again, err := m.GetSettings(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Side Gig"}, again.ExcludedPayees)
		assert.NotContains(t, again.CategoryMappings, "cat-2")
	})

	t.Run("users are isolated", func(t *testing.T) {
		s, err := m.GetSettings(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, s.ExcludedPayees)
	})
}

func TestMemoryStoreScenarios(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	scenario := &model.Scenario{
		Id:           "scen-1",
		UserId:       "user-1",
		Name:         "Raise next year",
		TargetIncome: 12_000,
		BucketAmounts: model.BucketAmounts{
			FixedCosts: 6_000, Investments: 2_000, Savings: 1_000, GuiltFree: 3_000,
		},
	}
	require.NoError(t, m.CreateScenario(ctx, scenario))

	t.Run("get", func(t *testing.T) {
		got, err := m.GetScenario(ctx, "scen-1")
		require.NoError(t, err)
		assert.Equal(t, scenario, got)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := m.GetScenario(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list filters by user", func(t *testing.T) {
		other := &model.Scenario{Id: "scen-2", UserId: "user-2", Name: "Someone else"}
		require.NoError(t, m.CreateScenario(ctx, other))

		list, token, err := m.ListScenarios(ctx, "user-1", 10, "")
		require.NoError(t, err)
		assert.Empty(t, token)
		require.Len(t, list, 1)
		assert.Equal(t, "scen-1", list[0].Id)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, m.DeleteScenario(ctx, "scen-1"))
		require.NoError(t, m.DeleteScenario(ctx, "scen-1"))
		_, err := m.GetScenario(ctx, "scen-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStoreScenarioPagination(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, m.CreateScenario(ctx, &model.Scenario{
			Id:     fmt.Sprintf("scen-%d", i),
			UserId: "user-1",
			Name:   fmt.Sprintf("Scenario %d", i),
		}))
	}

	var seen []string
	token := ""
	for {
		page, next, err := m.ListScenarios(ctx, "user-1", 2, token)
		require.NoError(t, err)
		for _, s := range page {
			seen = append(seen, s.Id)
		}
		if next == "" {
			break
		}
		token = next
	}

	assert.Equal(t, []string{"scen-0", "scen-1", "scen-2", "scen-3", "scen-4"}, seen)
}

func TestPageTokenRoundTrip(t *testing.T) {
	token := EncodePageToken("scen-42")
	cursor, err := DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, "scen-42", cursor)

	_, err = DecodePageToken("%%% not base64 %%%")
	assert.Error(t, err)
}
