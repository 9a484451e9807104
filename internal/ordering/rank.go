// Package ordering computes fractional sort ranks for tasks within a status
// column. Ranks are float64 keys: inserting between neighbors takes their
// midpoint, head and tail insertions extend by whole units. When a midpoint
// collapses into a neighbor (floating-point exhaustion after many inserts at
// the same spot) the column is rebalanced to integer ranks.
package ordering

// Append returns the rank for appending to the end of a column whose current
// maximum rank is max (nil for an empty column).
func Append(max *float64) float64 {
	if max == nil {
		return 0
	}
	return *max + 1
}

// IndexForRank maps a requested rank onto an insertion index in ranks, which
// must be sorted ascending with the moving task already excluded. The index
// is the count of ranks strictly below the requested value, so a requested
// rank equal to an existing one inserts immediately before it.
func IndexForRank(ranks []float64, requested float64) int {
	i := 0
	for i < len(ranks) && ranks[i] < requested {
		i++
	}
	return i
}

// RankForInsert computes the stored rank for inserting at index into ranks
// (sorted ascending, moving task excluded). The second result is false when
// the computed rank is numerically indistinguishable from a neighbor and the
// column needs a rebalance before the insert can land.
func RankForInsert(ranks []float64, index int) (float64, bool) {
	if len(ranks) == 0 {
		return 0, true
	}
	if index <= 0 {
		r := ranks[0] - 1
		return r, r < ranks[0]
	}
	if index >= len(ranks) {
		r := ranks[len(ranks)-1] + 1
		return r, r > ranks[len(ranks)-1]
	}
	lo, hi := ranks[index-1], ranks[index]
	mid := (lo + hi) / 2
	return mid, mid > lo && mid < hi
}

// Rebalanced returns fresh integer ranks 0..n-1 for a column of n tasks,
// preserving their current relative order.
func Rebalanced(n int) []float64 {
	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = float64(i)
	}
	return ranks
}
