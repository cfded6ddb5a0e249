package thread

// SelectVisible returns the comments eligible for rendering, in input order:
// every live comment, plus soft-deleted comments that still have at least one
// transitive descendant in the collection, deleted or not.
func SelectVisible(collection []Comment) []Comment {
	return selectVisible(NewIndex(collection), collection)
}

func selectVisible(idx Index, collection []Comment) []Comment {
	// ids that sit above at least one other comment
	supported := make(map[int64]struct{})
	for _, c := range collection {
		for _, id := range idx.ancestors(c) {
			supported[id] = struct{}{}
		}
	}

	out := make([]Comment, 0, len(collection))
	for _, c := range collection {
		if !c.SoftDeleted() {
			out = append(out, c)
			continue
		}
		if _, ok := supported[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}
