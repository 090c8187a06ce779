package catalog

import (
	"sort"

	"bompick/models"
)

type mergeKey struct {
	kind models.MediaKind
	id   int64
}

// accumulator is the single-owner merged dataset of one fetch session. It is
// not safe for concurrent use; the session serializes all add calls.
//
// Merging is first-writer-wins for every field except Platforms, which only
// grows via set union. That makes add commutative, associative and idempotent
// over batches, so request completion order cannot change the final dataset.
type accumulator struct {
	entries map[mergeKey]*models.Content
	order   []mergeKey
}

func newAccumulator() *accumulator {
	return &accumulator{entries: make(map[mergeKey]*models.Content)}
}

func (a *accumulator) len() int {
	return len(a.entries)
}

// add inserts c under its (mediaType, tmdbId) key, or unions its platforms
// into the already-present entry.
func (a *accumulator) add(c models.Content) {
	key := mergeKey{kind: c.MediaKind, id: c.TMDBID}
	existing, ok := a.entries[key]
	if !ok {
		stored := c
		stored.Platforms = append([]models.Platform(nil), c.Platforms...)
		stored.Genres = append([]models.Genre(nil), c.Genres...)
		a.entries[key] = &stored
		a.order = append(a.order, key)
		return
	}
	for _, p := range c.Platforms {
		if !existing.HasPlatform(p) {
			existing.Platforms = append(existing.Platforms, p)
		}
	}
}

// snapshot materializes the merged entries, most popular first. Ties keep
// first-insertion order (stable sort over the insertion sequence), so repeated
// snapshots of the same state are identical. The returned contents are deep
// enough copies that later merges cannot mutate a published snapshot.
func (a *accumulator) snapshot() []models.Content {
	contents := make([]models.Content, 0, len(a.order))
	for _, key := range a.order {
		c := *a.entries[key]
		c.Platforms = append([]models.Platform(nil), c.Platforms...)
		contents = append(contents, c)
	}
	sort.SliceStable(contents, func(i, j int) bool {
		return contents[i].Popularity > contents[j].Popularity
	})
	return contents
}
