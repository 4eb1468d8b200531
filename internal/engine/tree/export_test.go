package tree

// IndexLen returns the number of nodes registered in the id index.
func (t *Tree) IndexLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.index)
}
