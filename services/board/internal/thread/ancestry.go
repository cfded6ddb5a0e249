package thread

import "github.com/ecodeclub/ekit/slice"

// Index is an id lookup over one collection. Build it once per render pass.
type Index map[int64]Comment

func NewIndex(collection []Comment) Index {
	return slice.ToMap(collection, func(c Comment) int64 { return c.ID })
}

func (idx Index) Has(id int64) bool {
	_, ok := idx[id]
	return ok
}

type linkFault int

const (
	faultNone linkFault = iota
	faultDangling
	faultCycle
)

// IsDescendantOf reports whether ancestorID is a transitive ancestor of
// candidate. A comment is never its own descendant.
func (idx Index) IsDescendantOf(candidate Comment, ancestorID int64) bool {
	found, _ := idx.walk(candidate, ancestorID)
	return found
}

// IsDescendantOf is the collection form of Index.IsDescendantOf.
func IsDescendantOf(candidate Comment, ancestorID int64, collection []Comment) bool {
	return NewIndex(collection).IsDescendantOf(candidate, ancestorID)
}

// walk follows the parent chain of candidate until it meets ancestorID, runs
// out of parents, hits a parent missing from the index or revisits an id.
func (idx Index) walk(candidate Comment, ancestorID int64) (bool, linkFault) {
	if candidate.ID == ancestorID {
		return false, faultNone
	}
	visited := map[int64]struct{}{candidate.ID: {}}
	parentID := candidate.ParentID
	for parentID != nil {
		if *parentID == ancestorID {
			return true, faultNone
		}
		if _, seen := visited[*parentID]; seen {
			return false, faultCycle
		}
		visited[*parentID] = struct{}{}
		parent, ok := idx[*parentID]
		if !ok {
			return false, faultDangling
		}
		parentID = parent.ParentID
	}
	return false, faultNone
}

// ancestors returns every id reachable upwards from c, in walk order, with
// the same termination rules as walk.
func (idx Index) ancestors(c Comment) []int64 {
	var out []int64
	visited := map[int64]struct{}{c.ID: {}}
	parentID := c.ParentID
	for parentID != nil {
		if _, seen := visited[*parentID]; seen {
			break
		}
		visited[*parentID] = struct{}{}
		out = append(out, *parentID)
		parent, ok := idx[*parentID]
		if !ok {
			break
		}
		parentID = parent.ParentID
	}
	return out
}
