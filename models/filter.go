package models

// FilterState is the full set of criteria a browse view applies to the merged
// dataset. Empty selections mean "no constraint" for that dimension.
type FilterState struct {
	Platforms    []Platform    `json:"selectedOtt"`
	Genres       []Genre       `json:"selectedGenres"`
	Countries    []Country     `json:"selectedCountries"`
	ContentTypes []ContentType `json:"selectedContentTypes"`
	SortBy       SortOption    `json:"sortBy"`
	Query        string        `json:"searchQuery"`
}

// DefaultFilterState returns the initial criteria: nothing selected, sorted by
// popularity.
func DefaultFilterState() FilterState {
	return FilterState{SortBy: SortPopularity}
}

// ActiveCount counts selected filter chips across all dimensions. The search
// query and sort mode are not counted; the UI badges them separately.
func (f FilterState) ActiveCount() int {
	return len(f.Platforms) + len(f.Genres) + len(f.Countries) + len(f.ContentTypes)
}
