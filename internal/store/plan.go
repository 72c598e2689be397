package store

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Entry is one ranked sibling: a list on the board or a card in a list.
type Entry struct {
	ID        string
	Rank      string
	CreatedAt time.Time
}

// RankPlan holds the rank writes that realise a reorder. RankByID only names
// entries whose rank changes. WindowIDs lists, in final order, the entries
// rewritten by a rebalance.
type RankPlan struct {
	RankByID   map[string]string
	WindowIDs  []string
	Rebalanced bool
}

func emptyPlan() RankPlan { return RankPlan{RankByID: map[string]string{}} }

// SortEntries orders entries by rank, then creation time, then id. Entries
// without a rank sort by the tie-breakers alone.
func SortEntries(es []Entry) {
	sort.SliceStable(es, func(i, j int) bool { return compareEntries(es[i], es[j]) < 0 })
}

func compareEntries(a, b Entry) int {
	ra, rb := strings.TrimSpace(a.Rank), strings.TrimSpace(b.Rank)
	if ra != "" && rb != "" && ra != rb {
		return strings.Compare(ra, rb)
	}
	switch {
	case a.CreatedAt.Before(b.CreatedAt):
		return -1
	case a.CreatedAt.After(b.CreatedAt):
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}

// PlanReorderRanks plans the rank writes for moving movedID within sibs so
// that it ends at index insertAt of the sequence with movedID removed. The
// moved entry alone is re-ranked when its new neighbours leave room;
// otherwise the smallest window around it with usable outer bounds is
// rewritten.
func PlanReorderRanks(sibs []Entry, movedID string, insertAt int) (RankPlan, error) {
	movedID = strings.TrimSpace(movedID)
	if movedID == "" {
		return RankPlan{}, errors.New("missing moved id")
	}
	cur := append([]Entry(nil), sibs...)
	SortEntries(cur)

	from := -1
	for i := range cur {
		if strings.TrimSpace(cur[i].ID) == movedID {
			from = i
			break
		}
	}
	if from < 0 {
		return RankPlan{}, errors.New("moved entry not found in sibling set")
	}
	moved := cur[from]
	rest := append(append([]Entry(nil), cur[:from]...), cur[from+1:]...)

	insertAt = clampIndex(insertAt, len(rest))
	if insertAt == from {
		return emptyPlan(), nil
	}
	return planPlacement(rest, moved, insertAt, insertAt < from)
}

// PlanInsertRank plans the rank for an entry joining sibs at index at. sibs
// must not contain the entry.
func PlanInsertRank(sibs []Entry, e Entry, at int) (RankPlan, error) {
	if strings.TrimSpace(e.ID) == "" {
		return RankPlan{}, errors.New("missing inserted id")
	}
	rest := append([]Entry(nil), sibs...)
	SortEntries(rest)
	e.Rank = ""
	return planPlacement(rest, e, clampIndex(at, len(rest)), true)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func planPlacement(rest []Entry, moved Entry, at int, preferRight bool) (RankPlan, error) {
	final := make([]Entry, 0, len(rest)+1)
	final = append(final, rest[:at]...)
	final = append(final, moved)
	final = append(final, rest[at:]...)

	id := strings.TrimSpace(moved.ID)
	taken := ranksExcept(final, map[string]bool{id: true})
	if r, ok := rankBetweenNeighbours(taken, final, at); ok {
		if strings.TrimSpace(moved.Rank) == r {
			return emptyPlan(), nil
		}
		return RankPlan{RankByID: map[string]string{id: r}}, nil
	}

	lo, hi := minimalValidWindow(final, at, preferRight)
	lower, upper := outerBounds(final, lo, hi)

	window := map[string]bool{}
	for i := lo; i <= hi; i++ {
		window[strings.TrimSpace(final[i].ID)] = true
	}
	taken = ranksExcept(final, window)

	plan := RankPlan{
		RankByID:   map[string]string{},
		WindowIDs:  make([]string, 0, hi-lo+1),
		Rebalanced: true,
	}
	for i := lo; i <= hi; i++ {
		wid := strings.TrimSpace(final[i].ID)
		r, err := RankBetweenUnique(taken, lower, upper)
		if err != nil {
			return RankPlan{}, err
		}
		taken[normRank(r)] = true
		plan.RankByID[wid] = r
		plan.WindowIDs = append(plan.WindowIDs, wid)
		lower = r
	}
	return plan, nil
}

func ranksExcept(es []Entry, skip map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, e := range es {
		if skip[strings.TrimSpace(e.ID)] {
			continue
		}
		if r := normRank(e.Rank); r != "" {
			out[r] = true
		}
	}
	return out
}

func outerBounds(final []Entry, lo, hi int) (lower, upper string) {
	if lo > 0 {
		lower = strings.TrimSpace(final[lo-1].Rank)
	}
	if hi+1 < len(final) {
		upper = strings.TrimSpace(final[hi+1].Rank)
	}
	return lower, upper
}

func rankBetweenNeighbours(taken map[string]bool, final []Entry, at int) (string, bool) {
	lower, upper := outerBounds(final, at, at)
	if lower != "" && upper != "" && lower >= upper {
		return "", false
	}
	// A neighbour without a rank cannot bound anything.
	if (at > 0 && lower == "") || (at+1 < len(final) && upper == "") {
		return "", false
	}
	r, err := RankBetweenUnique(taken, lower, upper)
	if err != nil {
		return "", false
	}
	return r, true
}

// minimalValidWindow returns the smallest [lo, hi] containing at whose outer
// bounds are open or strictly increasing. Ties go right when preferRight.
func minimalValidWindow(final []Entry, at int, preferRight bool) (lo, hi int) {
	n := len(final)
	valid := func(lo, hi int) bool {
		if lo > 0 && strings.TrimSpace(final[lo-1].Rank) == "" {
			return false
		}
		if hi+1 < n && strings.TrimSpace(final[hi+1].Rank) == "" {
			return false
		}
		lower, upper := outerBounds(final, lo, hi)
		return lower == "" || upper == "" || lower < upper
	}
	for size := 1; size <= n; size++ {
		first := max(0, at-size+1)
		last := min(at, n-size)
		if preferRight {
			for lo := last; lo >= first; lo-- {
				if valid(lo, lo+size-1) {
					return lo, lo + size - 1
				}
			}
			continue
		}
		for lo := first; lo <= last; lo++ {
			if valid(lo, lo+size-1) {
				return lo, lo + size - 1
			}
		}
	}
	return 0, n - 1
}
