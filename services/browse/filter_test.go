package browse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bompick/models"
)

func fixture() []models.Content {
	return []models.Content{
		{
			ID: "tmdb-movie-1", TMDBID: 1, MediaKind: models.MediaKindMovie,
			Title: "서울의 밤", OriginalTitle: "Night in Seoul",
			Description: "A gripping Drama about the city",
			Rating:      7.8, ReleaseYear: 2023, Popularity: 50,
			Platforms:   []models.Platform{models.PlatformNetflix},
			Genres:      []models.Genre{models.GenreThriller},
			Country:     models.CountryKR,
			ContentType: models.ContentTypeMovie,
		},
		{
			ID: "tmdb-tv-2", TMDBID: 2, MediaKind: models.MediaKindTV,
			Title: "Space Voyage", Description: "설명 없음",
			Rating: 8.5, ReleaseYear: 0, Popularity: 40,
			Platforms:   []models.Platform{models.PlatformDisney, models.PlatformWavve},
			Genres:      []models.Genre{models.GenreSF, models.GenreAction},
			Country:     models.CountryUS,
			ContentType: models.ContentTypeDrama,
			Cast:        []string{"Jane Miller", "홍길동"},
		},
		{
			ID: "tmdb-movie-3", TMDBID: 3, MediaKind: models.MediaKindMovie,
			Title: "Laugh Track", Description: "A comedy special",
			Rating: 6.1, ReleaseYear: 2021, Popularity: 40,
			Platforms:   []models.Platform{models.PlatformWatcha},
			Genres:      []models.Genre{models.GenreComedy},
			Country:     models.CountryUS,
			ContentType: models.ContentTypeMovie,
			Director:    "Sam Cho",
		},
		{
			ID: "tmdb-tv-4", TMDBID: 4, MediaKind: models.MediaKindTV,
			Title: "조용한 아침", Description: "잔잔한 일상",
			Rating: 8.5, ReleaseYear: 2024, Popularity: 90,
			Platforms:   []models.Platform{models.PlatformTving, models.PlatformNetflix},
			Genres:      []models.Genre{models.GenreDrama, models.GenreRomance},
			Country:     models.CountryKR,
			ContentType: models.ContentTypeDrama,
		},
	}
}

func ids(contents []models.Content) []string {
	out := make([]string, 0, len(contents))
	for _, c := range contents {
		out = append(out, c.ID)
	}
	return out
}

func TestApplyNoCriteriaSortsByPopularity(t *testing.T) {
	got := Apply(fixture(), models.DefaultFilterState())
	require.Equal(t, []string{"tmdb-tv-4", "tmdb-movie-1", "tmdb-tv-2", "tmdb-movie-3"}, ids(got))
}

func TestApplyQueryMatchesDescriptionCaseInsensitive(t *testing.T) {
	filters := models.DefaultFilterState()
	filters.Query = "drama"

	got := Apply(fixture(), filters)
	require.Equal(t, []string{"tmdb-movie-1"}, ids(got), "query must match Description regardless of case")
}

func TestApplyQueryMatchesCastAndDirector(t *testing.T) {
	filters := models.DefaultFilterState()
	filters.Query = "jane miller"
	require.Equal(t, []string{"tmdb-tv-2"}, ids(Apply(fixture(), filters)))

	filters.Query = "  Sam Cho  "
	require.Equal(t, []string{"tmdb-movie-3"}, ids(Apply(fixture(), filters)))
}

func TestApplyPlatformDisjunctiveWithinDimension(t *testing.T) {
	filters := models.DefaultFilterState()
	filters.Platforms = []models.Platform{models.PlatformWatcha, models.PlatformWavve}

	got := Apply(fixture(), filters)
	require.Equal(t, []string{"tmdb-tv-2", "tmdb-movie-3"}, ids(got))
}

func TestApplyDimensionsAreConjunctive(t *testing.T) {
	entities := fixture()
	filters := models.DefaultFilterState()
	filters.Platforms = []models.Platform{models.PlatformNetflix}
	filters.Countries = []models.Country{models.CountryKR}
	filters.ContentTypes = []models.ContentType{models.ContentTypeDrama}

	combined := Apply(entities, filters)

	// The conjunction must equal the intersection of each dimension applied
	// on its own.
	intersection := map[string]int{}
	for _, dim := range []models.FilterState{
		{SortBy: models.SortPopularity, Platforms: filters.Platforms},
		{SortBy: models.SortPopularity, Countries: filters.Countries},
		{SortBy: models.SortPopularity, ContentTypes: filters.ContentTypes},
	} {
		for _, c := range Apply(entities, dim) {
			intersection[c.ID]++
		}
	}
	var want []string
	for _, c := range Apply(entities, models.DefaultFilterState()) {
		if intersection[c.ID] == 3 {
			want = append(want, c.ID)
		}
	}
	require.Equal(t, want, ids(combined))
}

func TestApplySortStability(t *testing.T) {
	// tv-2 and movie-3 share popularity 40; their input order must survive.
	got := Apply(fixture(), models.DefaultFilterState())
	require.Less(t,
		indexOf(t, ids(got), "tmdb-tv-2"),
		indexOf(t, ids(got), "tmdb-movie-3"))

	// Same check under rating sort, where tv-2 and tv-4 tie at 8.5.
	filters := models.DefaultFilterState()
	filters.SortBy = models.SortRating
	byRating := Apply(fixture(), filters)
	require.Less(t,
		indexOf(t, ids(byRating), "tmdb-tv-2"),
		indexOf(t, ids(byRating), "tmdb-tv-4"))
}

func TestApplyLatestSortPutsUnknownYearLast(t *testing.T) {
	filters := models.DefaultFilterState()
	filters.SortBy = models.SortLatest

	got := Apply(fixture(), filters)
	require.Equal(t, []string{"tmdb-tv-4", "tmdb-movie-1", "tmdb-movie-3", "tmdb-tv-2"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	entities := fixture()
	filters := models.DefaultFilterState()
	filters.SortBy = models.SortRating
	Apply(entities, filters)
	require.Equal(t, ids(fixture()), ids(entities))
}

func indexOf(t *testing.T, haystack []string, needle string) int {
	t.Helper()
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	t.Fatalf("%q not found in %v", needle, haystack)
	return -1
}
