package catalog

import (
	"fmt"
	"math"
	"strconv"

	"bompick/models"
)

const imageBaseURL = "https://image.tmdb.org/t/p"

// descriptionPlaceholder substitutes for titles TMDB has no localized
// overview for.
const descriptionPlaceholder = "설명 없음"

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "/w500" + path
}

func backdropURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + "/w1280" + path
}

// releaseYear extracts the year from a TMDB date string (YYYY-MM-DD). An empty
// or unparsable date yields 0, which the latest-first sort places last.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// transformItem converts one raw discover/search result plus its resolved
// platform list into a Content. It never fails: missing upstream fields fall
// back to the documented sentinels.
func transformItem(item tmdbItem, kind models.MediaKind, platforms []models.Platform, defaultCountry models.Country) models.Content {
	title := item.Title
	originalTitle := item.OriginalTitle
	releaseDate := item.ReleaseDate
	contentType := models.ContentTypeMovie
	if kind == models.MediaKindTV {
		title = item.Name
		originalTitle = item.OriginalName
		releaseDate = item.FirstAirDate
		contentType = models.ContentTypeDrama
	}

	description := item.Overview
	if description == "" {
		description = descriptionPlaceholder
	}

	return models.Content{
		ID:            fmt.Sprintf("tmdb-%s-%d", kind, item.ID),
		TMDBID:        item.ID,
		MediaKind:     kind,
		Title:         title,
		OriginalTitle: originalTitle,
		PosterURL:     posterURL(item.PosterPath),
		BackdropURL:   backdropURL(item.BackdropPath),
		Description:   description,
		Rating:        roundRating(item.VoteAverage),
		ReleaseYear:   releaseYear(releaseDate),
		Platforms:     platforms,
		Genres:        mapGenres(item.GenreIDs),
		Country:       mapCountry(item.OriginCountry, item.OriginalLanguage, defaultCountry),
		ContentType:   contentType,
		Popularity:    int(math.Round(item.Popularity)),
	}
}
