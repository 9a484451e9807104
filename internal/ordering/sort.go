package ordering

import (
	"sort"

	"github.com/alexanderramin/trellis/internal/domain"
)

// SortForDisplay orders tasks by sort rank, breaking ties by creation time
// and then ID. Tie-breaking is a display concern only; stored ranks are
// never mutated here.
func SortForDisplay(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.SortRank != b.SortRank {
			return a.SortRank < b.SortRank
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
