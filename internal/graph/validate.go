// Package graph validates mutations of the task dependency edge set. The
// edge set of a project, viewed as a directed graph, must stay acyclic at
// all times; validation always runs against the edges read inside the
// enclosing transaction, never against a cached graph.
package graph

import (
	"fmt"

	"github.com/alexanderramin/trellis/internal/domain"
)

// ValidateNewEdge checks whether adding blocked<-blocking to the existing
// edge set keeps the graph acyclic and duplicate-free. The caller is
// responsible for endpoint existence and project scoping.
func ValidateNewEdge(edges []domain.Dependency, blockedTaskID, blockingTaskID string) error {
	if blockedTaskID == blockingTaskID {
		return domain.ErrSelfDependency
	}

	for _, e := range edges {
		if e.BlockedTaskID == blockedTaskID && e.BlockingTaskID == blockingTaskID {
			return domain.ErrDuplicateDependency
		}
		// Fast path: the reverse pair is the shortest possible cycle, no
		// search needed.
		if e.BlockedTaskID == blockingTaskID && e.BlockingTaskID == blockedTaskID {
			return fmt.Errorf("%s already blocks %s: %w", blockedTaskID, blockingTaskID, domain.ErrCyclicDependency)
		}
	}

	if reaches(edges, blockedTaskID, blockingTaskID) {
		return fmt.Errorf("%s transitively blocks %s: %w", blockedTaskID, blockingTaskID, domain.ErrCyclicDependency)
	}
	return nil
}

// reaches reports whether from can reach to by walking blocking->blocked
// edges, i.e. whether `to` is transitively blocked by `from`. A new edge
// blocking `from` on `to` would then close a cycle.
func reaches(edges []domain.Dependency, from, to string) bool {
	// Adjacency by blocking endpoint: successors of t are the tasks t blocks.
	succ := make(map[string][]string, len(edges))
	for _, e := range edges {
		succ[e.BlockingTaskID] = append(succ[e.BlockingTaskID], e.BlockedTaskID)
	}

	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range succ[node] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
