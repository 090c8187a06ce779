package browse

import (
	"strings"
	"sync"

	"bompick/models"
)

// View is one client's filtered window over the merged dataset. Every change
// to the dataset or the criteria recomputes the filtered view and resets the
// pagination window; revealing more items is the only mutation that keeps it.
type View struct {
	mu       sync.Mutex
	dataRev  int
	contents []models.Content
	filters  models.FilterState
	filtered []models.Content
	pager    pager
}

// ViewSnapshot is the state a view exposes to the presentation layer.
type ViewSnapshot struct {
	Filters           models.FilterState `json:"filters"`
	ActiveFilterCount int                `json:"activeFilterCount"`
	Visible           []models.Content   `json:"visible"`
	TotalCount        int                `json:"totalCount"`
	VisibleCount      int                `json:"visibleCount"`
	HasMore           bool               `json:"hasMore"`
}

func NewView(pageSize int) *View {
	return &View{
		dataRev: -1,
		filters: models.DefaultFilterState(),
		pager:   newPager(pageSize),
	}
}

// UpdateContents swaps in a new dataset revision. A revision the view has
// already seen is a no-op, so polling reads do not clobber pagination.
func (v *View) UpdateContents(contents []models.Content, revision int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if revision == v.dataRev {
		return
	}
	v.dataRev = revision
	v.contents = contents
	v.recompute()
}

// recompute derives the filtered view and resets the window. Callers hold v.mu.
func (v *View) recompute() {
	v.filtered = Apply(v.contents, v.filters)
	v.pager.reset(len(v.filtered))
}

func (v *View) TogglePlatform(p models.Platform) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, have := range v.filters.Platforms {
		if have == p {
			v.filters.Platforms = append(v.filters.Platforms[:i:i], v.filters.Platforms[i+1:]...)
			v.recompute()
			return
		}
	}
	v.filters.Platforms = append(v.filters.Platforms, p)
	v.recompute()
}

func (v *View) ToggleGenre(g models.Genre) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, have := range v.filters.Genres {
		if have == g {
			v.filters.Genres = append(v.filters.Genres[:i:i], v.filters.Genres[i+1:]...)
			v.recompute()
			return
		}
	}
	v.filters.Genres = append(v.filters.Genres, g)
	v.recompute()
}

func (v *View) ToggleCountry(c models.Country) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, have := range v.filters.Countries {
		if have == c {
			v.filters.Countries = append(v.filters.Countries[:i:i], v.filters.Countries[i+1:]...)
			v.recompute()
			return
		}
	}
	v.filters.Countries = append(v.filters.Countries, c)
	v.recompute()
}

func (v *View) ToggleContentType(t models.ContentType) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, have := range v.filters.ContentTypes {
		if have == t {
			v.filters.ContentTypes = append(v.filters.ContentTypes[:i:i], v.filters.ContentTypes[i+1:]...)
			v.recompute()
			return
		}
	}
	v.filters.ContentTypes = append(v.filters.ContentTypes, t)
	v.recompute()
}

// SetSort switches the sort mode. Unknown modes are ignored.
func (v *View) SetSort(mode models.SortOption) {
	if !models.ValidSortOption(mode) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.SortBy = mode
	v.recompute()
}

func (v *View) SetQuery(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.Query = strings.TrimSpace(query)
	v.recompute()
}

// ResetFilters restores the initial criteria, keeping the dataset.
func (v *View) ResetFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = models.DefaultFilterState()
	v.recompute()
}

// LoadMore reveals the next page of the current view.
func (v *View) LoadMore() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.loadMore()
}

// Snapshot returns the current filters and visible window.
func (v *View) Snapshot() ViewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	visible := make([]models.Content, v.pager.visibleCount())
	copy(visible, v.filtered[:v.pager.visibleCount()])
	return ViewSnapshot{
		Filters:           v.filters,
		ActiveFilterCount: v.filters.ActiveCount(),
		Visible:           visible,
		TotalCount:        len(v.filtered),
		VisibleCount:      v.pager.visibleCount(),
		HasMore:           v.pager.hasMore(),
	}
}
