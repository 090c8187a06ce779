package models

// Parse helpers for request path values. Each returns false for values outside
// the internal vocabulary; handlers turn that into a 400.

func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformNetflix, PlatformDisney, PlatformTving, PlatformWavve, PlatformCoupang, PlatformWatcha:
		return Platform(s), true
	}
	return "", false
}

func ParseGenre(s string) (Genre, bool) {
	switch Genre(s) {
	case GenreRomance, GenreThriller, GenreHorror, GenreComedy, GenreAction, GenreSF,
		GenreDrama, GenreAnimation, GenreDocumentary, GenreFantasy, GenreCrime, GenreMystery:
		return Genre(s), true
	}
	return "", false
}

func ParseCountry(s string) (Country, bool) {
	switch Country(s) {
	case CountryKR, CountryUS, CountryJP, CountryGB, CountryFR, CountryES, CountryDE:
		return Country(s), true
	}
	return "", false
}

func ParseContentType(s string) (ContentType, bool) {
	switch ContentType(s) {
	case ContentTypeMovie, ContentTypeDrama, ContentTypeVariety, ContentTypeDocumentary:
		return ContentType(s), true
	}
	return "", false
}
