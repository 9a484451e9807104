package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trellis/internal/domain"
)

func edge(blocked, blocking string) domain.Dependency {
	return domain.Dependency{BlockedTaskID: blocked, BlockingTaskID: blocking}
}

func TestValidateNewEdge_EmptyGraph(t *testing.T) {
	require.NoError(t, ValidateNewEdge(nil, "b", "a"))
}

func TestValidateNewEdge_SelfDependency(t *testing.T) {
	err := ValidateNewEdge(nil, "a", "a")
	assert.ErrorIs(t, err, domain.ErrSelfDependency)
}

func TestValidateNewEdge_Duplicate(t *testing.T) {
	edges := []domain.Dependency{edge("b", "a")}
	err := ValidateNewEdge(edges, "b", "a")
	assert.ErrorIs(t, err, domain.ErrDuplicateDependency)
}

func TestValidateNewEdge_ReversePairIsCycle(t *testing.T) {
	edges := []domain.Dependency{edge("b", "a")}
	err := ValidateNewEdge(edges, "a", "b")
	assert.ErrorIs(t, err, domain.ErrCyclicDependency)
}

func TestValidateNewEdge_TwoHopCycle(t *testing.T) {
	// a blocks b, b blocks c; blocking a on c would close a->b->c->a.
	edges := []domain.Dependency{
		edge("b", "a"),
		edge("c", "b"),
	}
	err := ValidateNewEdge(edges, "a", "c")
	assert.ErrorIs(t, err, domain.ErrCyclicDependency)
}

func TestValidateNewEdge_LongCycle(t *testing.T) {
	// Chain t0 -> t1 -> ... -> t9, then close the loop at the far end.
	ids := []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9"}
	var edges []domain.Dependency
	for i := 1; i < len(ids); i++ {
		edges = append(edges, edge(ids[i], ids[i-1]))
	}
	err := ValidateNewEdge(edges, ids[0], ids[len(ids)-1])
	assert.ErrorIs(t, err, domain.ErrCyclicDependency)
}

func TestValidateNewEdge_DiamondIsNotACycle(t *testing.T) {
	// a blocks b and c, both of which block d. Shared ancestry is fine;
	// only a directed loop is rejected.
	edges := []domain.Dependency{
		edge("b", "a"),
		edge("c", "a"),
		edge("d", "b"),
	}
	require.NoError(t, ValidateNewEdge(edges, "d", "c"))
}

func TestValidateNewEdge_UnrelatedComponents(t *testing.T) {
	edges := []domain.Dependency{
		edge("b", "a"),
		edge("d", "c"),
	}
	require.NoError(t, ValidateNewEdge(edges, "c", "b"))
}

func TestValidateNewEdge_SameBlockerTwice(t *testing.T) {
	// One task may block many others.
	edges := []domain.Dependency{edge("b", "a")}
	require.NoError(t, ValidateNewEdge(edges, "c", "a"))
}
