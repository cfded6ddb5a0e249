package thread

// CanModify reports whether currentUserID may edit or delete c. Anonymous
// viewers and authorless comments never match. Soft-delete does not matter.
func CanModify(c Comment, currentUserID *int64) bool {
	if c.AuthorID == nil || currentUserID == nil {
		return false
	}
	return *c.AuthorID == *currentUserID
}

// CanReply is always true; replying is not tied to ownership.
func CanReply(Comment) bool { return true }
