package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"bompick/models"
)

func entity(kind models.MediaKind, id int64, popularity int, platforms ...models.Platform) models.Content {
	return models.Content{
		ID:         "tmdb-" + string(kind) + "-x",
		TMDBID:     id,
		MediaKind:  kind,
		Title:      "title",
		Rating:     7.5,
		Platforms:  platforms,
		Popularity: popularity,
	}
}

// normalize reduces an accumulator to a comparable form: entities keyed by
// merge identity with platform sets in a canonical order.
func normalize(a *accumulator) map[mergeKey]models.Content {
	out := make(map[mergeKey]models.Content, a.len())
	for _, c := range a.snapshot() {
		sort.Slice(c.Platforms, func(i, j int) bool { return c.Platforms[i] < c.Platforms[j] })
		out[mergeKey{kind: c.MediaKind, id: c.TMDBID}] = c
	}
	return out
}

func TestMergeCommutative(t *testing.T) {
	b1 := []models.Content{
		entity(models.MediaKindMovie, 1, 10, models.PlatformNetflix),
		entity(models.MediaKindMovie, 2, 20, models.PlatformNetflix),
	}
	b2 := []models.Content{
		entity(models.MediaKindMovie, 1, 10, models.PlatformWavve),
		entity(models.MediaKindTV, 1, 30, models.PlatformTving),
	}

	forward := newAccumulator()
	for _, c := range append(append([]models.Content{}, b1...), b2...) {
		forward.add(c)
	}
	reverse := newAccumulator()
	for _, c := range append(append([]models.Content{}, b2...), b1...) {
		reverse.add(c)
	}

	require.Equal(t, normalize(forward), normalize(reverse))
}

func TestMergeIdempotent(t *testing.T) {
	batch := []models.Content{
		entity(models.MediaKindMovie, 1, 10, models.PlatformNetflix, models.PlatformDisney),
		entity(models.MediaKindTV, 2, 20, models.PlatformWatcha),
	}

	acc := newAccumulator()
	for _, c := range batch {
		acc.add(c)
	}
	before := normalize(acc)

	for _, c := range batch {
		acc.add(c)
	}
	require.Equal(t, before, normalize(acc))
}

func TestMergeScalarsImmutable(t *testing.T) {
	acc := newAccumulator()

	first := entity(models.MediaKindMovie, 42, 50, models.PlatformNetflix)
	first.Rating = 8.1
	first.Title = "original"
	acc.add(first)

	later := entity(models.MediaKindMovie, 42, 99, models.PlatformWavve)
	later.Rating = 3.2
	later.Title = "changed"
	acc.add(later)

	merged := acc.snapshot()
	require.Len(t, merged, 1)
	require.Equal(t, "original", merged[0].Title)
	require.Equal(t, 8.1, merged[0].Rating)
	require.Equal(t, 50, merged[0].Popularity)
	require.ElementsMatch(t,
		[]models.Platform{models.PlatformNetflix, models.PlatformWavve},
		merged[0].Platforms)
}

func TestMergeUnionsAvailabilityAcrossQueries(t *testing.T) {
	// Same movie discovered via two different platform queries.
	acc := newAccumulator()
	acc.add(entity(models.MediaKindMovie, 42, 10, models.PlatformNetflix))
	acc.add(entity(models.MediaKindMovie, 42, 10, models.PlatformDisney))

	merged := acc.snapshot()
	require.Len(t, merged, 1)
	require.ElementsMatch(t,
		[]models.Platform{models.PlatformNetflix, models.PlatformDisney},
		merged[0].Platforms)
}

func TestMergeKeySeparatesMediaKinds(t *testing.T) {
	acc := newAccumulator()
	acc.add(entity(models.MediaKindMovie, 42, 10, models.PlatformNetflix))
	acc.add(entity(models.MediaKindTV, 42, 10, models.PlatformNetflix))
	require.Equal(t, 2, acc.len())
}

func TestSnapshotOrdersByPopularity(t *testing.T) {
	acc := newAccumulator()
	for i, pop := range []int{10, 50, 30, 20, 40} {
		acc.add(entity(models.MediaKindMovie, int64(i+1), pop, models.PlatformNetflix))
	}

	got := make([]int, 0, 5)
	for _, c := range acc.snapshot() {
		got = append(got, c.Popularity)
	}
	require.Equal(t, []int{50, 40, 30, 20, 10}, got)
}

func TestSnapshotIsIsolatedFromLaterMerges(t *testing.T) {
	acc := newAccumulator()
	acc.add(entity(models.MediaKindMovie, 1, 10, models.PlatformNetflix))
	snap := acc.snapshot()

	acc.add(entity(models.MediaKindMovie, 1, 10, models.PlatformWavve))
	require.Equal(t, []models.Platform{models.PlatformNetflix}, snap[0].Platforms)
}
