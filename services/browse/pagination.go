package browse

// pager windows an ordered view down to a visible prefix with incremental
// reveal. It must be reset whenever the underlying view changes; stale window
// state over a different view is a user-visible bug.
type pager struct {
	pageSize int
	visible  int
	total    int
}

func newPager(pageSize int) pager {
	if pageSize <= 0 {
		pageSize = 24
	}
	return pager{pageSize: pageSize, visible: pageSize}
}

// reset re-anchors the window at the first page of a view of the given length.
func (p *pager) reset(total int) {
	p.total = total
	p.visible = p.pageSize
}

// loadMore reveals up to one more page.
func (p *pager) loadMore() {
	p.visible += p.pageSize
	if p.visible > p.total {
		p.visible = p.total
	}
}

// visibleCount returns how many items of the view are currently shown.
func (p *pager) visibleCount() int {
	if p.visible > p.total {
		return p.total
	}
	return p.visible
}

func (p *pager) hasMore() bool {
	return p.visibleCount() < p.total
}
