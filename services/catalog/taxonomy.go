package catalog

import "bompick/models"

// Static mapping tables between TMDB's vocabularies and ours. All of the map
// functions are total: unrecognized upstream codes are dropped, never errors,
// so a TMDB catalog change can shrink a result but not fail a fetch.

// platformProviderIDs maps internal platform keys to TMDB watch-provider ids.
var platformProviderIDs = map[models.Platform]int{
	models.PlatformNetflix: 8,
	models.PlatformDisney:  337,
	models.PlatformWatcha:  97,
	models.PlatformWavve:   356,
	models.PlatformTving:   1796,
	models.PlatformCoupang: 2039,
}

// providerPlatforms is the reverse of platformProviderIDs.
var providerPlatforms = func() map[int]models.Platform {
	m := make(map[int]models.Platform, len(platformProviderIDs))
	for platform, id := range platformProviderIDs {
		m[id] = platform
	}
	return m
}()

// genreIDMap collapses TMDB movie and TV genre ids onto the internal genres.
// Several upstream genres share an internal target (Adventure, War and Western
// fold into action; Family, History, Music and the talk/reality TV genres fold
// into drama).
var genreIDMap = map[int]models.Genre{
	// Movie genres
	28:    models.GenreAction,
	12:    models.GenreAction, // Adventure
	16:    models.GenreAnimation,
	35:    models.GenreComedy,
	80:    models.GenreCrime,
	99:    models.GenreDocumentary,
	18:    models.GenreDrama,
	10751: models.GenreDrama, // Family
	14:    models.GenreFantasy,
	36:    models.GenreDrama, // History
	27:    models.GenreHorror,
	10402: models.GenreDrama, // Music
	9648:  models.GenreMystery,
	10749: models.GenreRomance,
	878:   models.GenreSF,
	10770: models.GenreDrama, // TV Movie
	53:    models.GenreThriller,
	10752: models.GenreAction, // War
	37:    models.GenreAction, // Western
	// TV genres
	10759: models.GenreAction, // Action & Adventure
	10762: models.GenreAnimation, // Kids
	10763: models.GenreDocumentary, // News
	10764: models.GenreDrama, // Reality
	10765: models.GenreSF, // Sci-Fi & Fantasy
	10766: models.GenreDrama, // Soap
	10767: models.GenreDrama, // Talk
	10768: models.GenreThriller, // War & Politics
}

var regionCountries = map[string]models.Country{
	"KR": models.CountryKR,
	"US": models.CountryUS,
	"JP": models.CountryJP,
	"GB": models.CountryGB,
	"FR": models.CountryFR,
	"ES": models.CountryES,
	"DE": models.CountryDE,
}

// internalCountries is the set of country keys the model knows about; used to
// validate the configured default country.
var internalCountries = func() map[models.Country]bool {
	m := make(map[models.Country]bool, len(regionCountries))
	for _, c := range regionCountries {
		m[c] = true
	}
	return m
}()

var languageCountries = map[string]models.Country{
	"ko": models.CountryKR,
	"en": models.CountryUS,
	"ja": models.CountryJP,
	"fr": models.CountryFR,
	"es": models.CountryES,
	"de": models.CountryDE,
}

// mapGenres translates TMDB genre ids into the internal genre set. Duplicate
// targets collapse; unknown ids are skipped.
func mapGenres(ids []int) []models.Genre {
	seen := make(map[models.Genre]bool, len(ids))
	genres := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		g, ok := genreIDMap[id]
		if !ok || seen[g] {
			continue
		}
		seen[g] = true
		genres = append(genres, g)
	}
	return genres
}

// mapCountry resolves a production country from the first origin-country code,
// falling back to the original language, then to fallback. Never fails.
func mapCountry(originCountry []string, originalLanguage string, fallback models.Country) models.Country {
	if len(originCountry) > 0 {
		if c, ok := regionCountries[originCountry[0]]; ok {
			return c
		}
	}
	if c, ok := languageCountries[originalLanguage]; ok {
		return c
	}
	return fallback
}

// mapProviders extracts the subscription (flatrate) providers for the given
// watch region and translates them to platform keys. Providers TMDB lists that
// we have no key for are dropped.
func mapProviders(raw *tmdbWatchProviders, region string) []models.Platform {
	if raw == nil {
		return nil
	}
	regional, ok := raw.Results[region]
	if !ok {
		return nil
	}
	seen := make(map[models.Platform]bool, len(regional.Flatrate))
	platforms := make([]models.Platform, 0, len(regional.Flatrate))
	for _, p := range regional.Flatrate {
		platform, ok := providerPlatforms[p.ProviderID]
		if !ok || seen[platform] {
			continue
		}
		seen[platform] = true
		platforms = append(platforms, platform)
	}
	return platforms
}

// parsePlatform maps a config/platform path value to its internal key.
func parsePlatform(s string) (models.Platform, bool) {
	p := models.Platform(s)
	_, ok := platformProviderIDs[p]
	return p, ok
}
