package department

import (
	"github.com/frahmantamala/orgtree/internal"
)

// AncestorLookup returns the parent of id, and whether id is known at all.
type AncestorLookup func(id int64) (parentID *int64, found bool)

// ValidateParent checks that giving nodeID the parent parentID keeps the
// hierarchy a forest. A nil nodeID is a department that has not been stored
// yet; nothing can point at it, so any existing parent is acceptable. The walk
// follows lookup from parentID towards the root and stops on any repeated id,
// so a corrupt chain cannot loop forever.
func ValidateParent(nodeID, parentID *int64, lookup AncestorLookup) error {
	if parentID == nil || nodeID == nil {
		return nil
	}
	if *parentID == *nodeID {
		return internal.NewSelfParentError(*nodeID)
	}

	visited := make(map[int64]struct{})
	child := *nodeID
	for current := parentID; current != nil; {
		if *current == *nodeID {
			return internal.NewCycleError(*nodeID, *parentID)
		}
		if _, seen := visited[*current]; seen {
			return internal.NewCycleError(*current, *parentID)
		}
		visited[*current] = struct{}{}

		next, found := lookup(*current)
		if !found {
			return internal.NewDanglingReferenceError(child, *current)
		}
		child = *current
		current = next
	}
	return nil
}

// ParentIndex maps department id to parent id.
type ParentIndex map[int64]*int64

func NewParentIndex(nodes []Node) ParentIndex {
	idx := make(ParentIndex, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n.ParentID
	}
	return idx
}

func (idx ParentIndex) Lookup(id int64) (*int64, bool) {
	parentID, ok := idx[id]
	return parentID, ok
}

// Descendants returns id followed by every department below it, breadth first.
func (idx ParentIndex) Descendants(id int64) []int64 {
	children := make(map[int64][]int64, len(idx))
	for child, parent := range idx {
		if parent != nil {
			children[*parent] = append(children[*parent], child)
		}
	}

	seen := map[int64]struct{}{id: {}}
	out := []int64{id}
	for i := 0; i < len(out); i++ {
		for _, c := range children[out[i]] {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
