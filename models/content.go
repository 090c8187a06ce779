package models

// MediaKind is the upstream catalog partition a title comes from.
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// ParseMediaKind maps a request path value to a MediaKind.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch MediaKind(s) {
	case MediaKindMovie:
		return MediaKindMovie, true
	case MediaKindTV:
		return MediaKindTV, true
	}
	return "", false
}

// Platform is an internal OTT platform key.
type Platform string

const (
	PlatformNetflix Platform = "netflix"
	PlatformDisney  Platform = "disney"
	PlatformTving   Platform = "tving"
	PlatformWavve   Platform = "wavve"
	PlatformCoupang Platform = "coupang"
	PlatformWatcha  Platform = "watcha"
)

// Genre is an internal genre key. Upstream genre ids collapse onto these
// (many-to-one), so the set here is intentionally coarser than TMDB's.
type Genre string

const (
	GenreRomance     Genre = "romance"
	GenreThriller    Genre = "thriller"
	GenreHorror      Genre = "horror"
	GenreComedy      Genre = "comedy"
	GenreAction      Genre = "action"
	GenreSF          Genre = "sf"
	GenreDrama       Genre = "drama"
	GenreAnimation   Genre = "animation"
	GenreDocumentary Genre = "documentary"
	GenreFantasy     Genre = "fantasy"
	GenreCrime       Genre = "crime"
	GenreMystery     Genre = "mystery"
)

// Country is an internal production-country key.
type Country string

const (
	CountryKR Country = "kr"
	CountryUS Country = "us"
	CountryJP Country = "jp"
	CountryGB Country = "gb"
	CountryFR Country = "fr"
	CountryES Country = "es"
	CountryDE Country = "de"
)

// ContentType classifies a title for display, independent of which upstream
// catalog it was discovered in.
type ContentType string

const (
	ContentTypeMovie       ContentType = "movie"
	ContentTypeDrama       ContentType = "drama"
	ContentTypeVariety     ContentType = "variety"
	ContentTypeDocumentary ContentType = "documentary"
)

// SortOption selects the ordering of a filtered view.
type SortOption string

const (
	SortRating     SortOption = "rating"
	SortLatest     SortOption = "latest"
	SortPopularity SortOption = "popularity"
)

// ValidSortOption reports whether s is a known sort mode.
func ValidSortOption(s SortOption) bool {
	switch s {
	case SortRating, SortLatest, SortPopularity:
		return true
	}
	return false
}

// Content is one merged, display-ready title. Instances are created once per
// (mediaType, tmdbId) pair during a fetch session; only Platforms grows
// afterwards, via availability merging.
type Content struct {
	ID            string      `json:"id"`
	TMDBID        int64       `json:"tmdbId"`
	MediaKind     MediaKind   `json:"mediaType"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"originalTitle,omitempty"`
	PosterURL     string      `json:"posterUrl"`
	BackdropURL   string      `json:"backdropUrl,omitempty"`
	Description   string      `json:"description"`
	Rating        float64     `json:"rating"`
	ReleaseYear   int         `json:"releaseYear"`
	Platforms     []Platform  `json:"ottPlatforms"`
	Genres        []Genre     `json:"genres"`
	Country       Country     `json:"country"`
	ContentType   ContentType `json:"contentType"`
	Director      string      `json:"director,omitempty"`
	Cast          []string    `json:"cast,omitempty"`
	Popularity    int         `json:"popularity"`
}

// HasPlatform reports whether the title is available on p.
func (c Content) HasPlatform(p Platform) bool {
	for _, have := range c.Platforms {
		if have == p {
			return true
		}
	}
	return false
}

// HasGenre reports whether g is one of the title's genres.
func (c Content) HasGenre(g Genre) bool {
	for _, have := range c.Genres {
		if have == g {
			return true
		}
	}
	return false
}
