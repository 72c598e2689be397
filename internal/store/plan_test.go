package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func chainEntries(t *testing.T, n int) []Entry {
	t.Helper()
	out := make([]Entry, n)
	prev := ""
	for i := range out {
		r, err := RankAfter(prev)
		require.NoError(t, err)
		out[i] = Entry{ID: fmt.Sprintf("e%d", i), Rank: r, CreatedAt: t0.Add(time.Duration(i) * time.Minute)}
		prev = r
	}
	return out
}

func sameRankEntries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{ID: fmt.Sprintf("e%d", i), Rank: "m", CreatedAt: t0.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func applyPlan(es []Entry, plan RankPlan) []Entry {
	out := append([]Entry(nil), es...)
	for i := range out {
		if r, ok := plan.RankByID[out[i].ID]; ok {
			out[i].Rank = r
		}
	}
	SortEntries(out)
	return out
}

func indexOf(es []Entry, id string) int {
	for i, e := range es {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func TestPlanReorderRanks_FastPathTouchesOnlyMoved(t *testing.T) {
	sibs := []Entry{{ID: "a", Rank: "a"}, {ID: "c", Rank: "c"}, {ID: "e", Rank: "e"}}
	plan, err := PlanReorderRanks(sibs, "a", 2)
	require.NoError(t, err)
	assert.False(t, plan.Rebalanced)
	assert.Equal(t, map[string]string{"a": "o"}, plan.RankByID)
}

func TestPlanReorderRanks_NoOp(t *testing.T) {
	sibs := chainEntries(t, 3)
	plan, err := PlanReorderRanks(sibs, "e1", 1)
	require.NoError(t, err)
	assert.Empty(t, plan.RankByID)
}

func TestPlanReorderRanks_RebalancesDuplicateWindow(t *testing.T) {
	sibs := sameRankEntries(3)
	plan, err := PlanReorderRanks(sibs, "e2", 1)
	require.NoError(t, err)
	assert.True(t, plan.Rebalanced)
	assert.Equal(t, []string{"e2", "e1"}, plan.WindowIDs)

	final := applyPlan(sibs, plan)
	assert.Equal(t, []string{"e0", "e2", "e1"}, []string{final[0].ID, final[1].ID, final[2].ID})
}

func TestPlanReorderRanks_EveryMoveLands(t *testing.T) {
	sets := map[string][]Entry{
		"chain":     chainEntries(t, 5),
		"same rank": sameRankEntries(5),
	}
	for name, sibs := range sets {
		for from := range sibs {
			for to := range sibs {
				moved := sibs[from].ID
				plan, err := PlanReorderRanks(sibs, moved, to)
				require.NoError(t, err, "%s %d->%d", name, from, to)
				assert.Equal(t, to, indexOf(applyPlan(sibs, plan), moved), "%s %d->%d", name, from, to)
			}
		}
	}
}

func TestPlanReorderRanks_Errors(t *testing.T) {
	_, err := PlanReorderRanks(chainEntries(t, 2), "", 0)
	assert.Error(t, err)
	_, err = PlanReorderRanks(chainEntries(t, 2), "nope", 0)
	assert.Error(t, err)
}

func TestPlanInsertRank(t *testing.T) {
	plan, err := PlanInsertRank(nil, Entry{ID: "n"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "h", plan.RankByID["n"])

	sibs := []Entry{{ID: "a", Rank: "h"}}
	plan, err = PlanInsertRank(sibs, Entry{ID: "n", Rank: "zz"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "8", plan.RankByID["n"])

	for at := 0; at <= 5; at++ {
		sibs := sameRankEntries(5)
		plan, err := PlanInsertRank(sibs, Entry{ID: "n", CreatedAt: t0}, at)
		require.NoError(t, err)
		final := applyPlan(append(sibs, Entry{ID: "n", CreatedAt: t0}), plan)
		assert.Equal(t, at, indexOf(final, "n"), "insert at %d", at)
	}
}
