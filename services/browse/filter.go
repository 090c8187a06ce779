package browse

import (
	"sort"
	"strings"

	"bompick/models"
)

// Apply filters and sorts the merged dataset against the given criteria.
// Pure: the input slice is never mutated and the result is a fresh slice.
//
// Dimensions combine conjunctively; within one dimension any selected value
// matching is enough. An empty selection accepts everything. Sorting is
// stable, so equal keys keep the input's relative order.
func Apply(contents []models.Content, filters models.FilterState) []models.Content {
	result := make([]models.Content, 0, len(contents))
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	for _, c := range contents {
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		if !matchesPlatforms(c, filters.Platforms) {
			continue
		}
		if !matchesGenres(c, filters.Genres) {
			continue
		}
		if len(filters.Countries) > 0 && !containsCountry(filters.Countries, c.Country) {
			continue
		}
		if len(filters.ContentTypes) > 0 && !containsContentType(filters.ContentTypes, c.ContentType) {
			continue
		}
		result = append(result, c)
	}

	switch filters.SortBy {
	case models.SortRating:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Rating > result[j].Rating
		})
	case models.SortLatest:
		// Unknown years are 0 and therefore sort last.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ReleaseYear > result[j].ReleaseYear
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Popularity > result[j].Popularity
		})
	}
	return result
}

// matchesQuery checks the trimmed, lowercased query against title, original
// title, description, cast and director. Any hit passes.
func matchesQuery(c models.Content, query string) bool {
	if strings.Contains(strings.ToLower(c.Title), query) ||
		strings.Contains(strings.ToLower(c.OriginalTitle), query) ||
		strings.Contains(strings.ToLower(c.Description), query) ||
		strings.Contains(strings.ToLower(c.Director), query) {
		return true
	}
	for _, actor := range c.Cast {
		if strings.Contains(strings.ToLower(actor), query) {
			return true
		}
	}
	return false
}

func matchesPlatforms(c models.Content, selected []models.Platform) bool {
	if len(selected) == 0 {
		return true
	}
	for _, p := range selected {
		if c.HasPlatform(p) {
			return true
		}
	}
	return false
}

func matchesGenres(c models.Content, selected []models.Genre) bool {
	if len(selected) == 0 {
		return true
	}
	for _, g := range selected {
		if c.HasGenre(g) {
			return true
		}
	}
	return false
}

func containsCountry(selected []models.Country, c models.Country) bool {
	for _, s := range selected {
		if s == c {
			return true
		}
	}
	return false
}

func containsContentType(selected []models.ContentType, t models.ContentType) bool {
	for _, s := range selected {
		if s == t {
			return true
		}
	}
	return false
}
