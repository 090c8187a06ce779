package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"bompick/models"
)

// Minimal TMDB v3 client (discover, watch-provider and multi-search endpoints
// we need). Responses are cached on disk; transient upstream errors are
// retried with backoff before the caller sees a failure.

type tmdbClient struct {
	apiKey   string
	baseURL  string
	language string
	region   string
	httpc    *http.Client
	cache    *fileCache

	retryAttempts uint
	retryDelay    time.Duration

	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey, baseURL, language, region string, httpc *http.Client, cache *fileCache) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &tmdbClient{
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		language:      language,
		region:        region,
		httpc:         httpc,
		cache:         cache,
		retryAttempts: 3,
		retryDelay:    300 * time.Millisecond,
		minInterval:   20 * time.Millisecond,
	}
}

type tmdbItem struct {
	ID               int64   `json:"id"`
	MediaType        string  `json:"media_type,omitempty"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	OriginCountry    []string `json:"origin_country,omitempty"`
}

type tmdbListPage struct {
	Page       int        `json:"page"`
	Results    []tmdbItem `json:"results"`
	TotalPages int        `json:"total_pages"`
}

type tmdbProviderEntry struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
}

type tmdbRegionalProviders struct {
	Flatrate []tmdbProviderEntry `json:"flatrate"`
	Buy      []tmdbProviderEntry `json:"buy"`
	Rent     []tmdbProviderEntry `json:"rent"`
}

type tmdbWatchProviders struct {
	Results map[string]tmdbRegionalProviders `json:"results"`
}

// discover walks one page of /discover/{movie,tv} restricted to subscription
// availability on one watch provider in the configured region.
func (c *tmdbClient) discover(ctx context.Context, kind models.MediaKind, providerID, page int) (*tmdbListPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("watch_region", c.region)
	q.Set("with_watch_providers", strconv.Itoa(providerID))
	q.Set("with_watch_monetization_types", "flatrate")
	q.Set("sort_by", "popularity.desc")

	var out tmdbListPage
	if err := c.getJSON(ctx, "/discover/"+string(kind), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// watchProviders fetches per-region availability for one title.
func (c *tmdbClient) watchProviders(ctx context.Context, kind models.MediaKind, id int64) (*tmdbWatchProviders, error) {
	var out tmdbWatchProviders
	path := fmt.Sprintf("/%s/%d/watch/providers", kind, id)
	if err := c.getJSON(ctx, path, url.Values{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// searchMulti runs the combined movie+TV search.
func (c *tmdbClient) searchMulti(ctx context.Context, query string, page int) (*tmdbListPage, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("region", c.region)

	var out tmdbListPage
	if err := c.getJSON(ctx, "/search/multi", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	u := c.baseURL + path + "?" + q.Encode()

	cacheKey := ""
	if c.cache != nil {
		sum := sha1.Sum([]byte(u))
		cacheKey = hex.EncodeToString(sum[:])
		if ok, err := c.cache.get(cacheKey, v); err == nil && ok {
			return nil
		}
	}

	body, err := retry.DoWithData(
		func() ([]byte, error) { return c.doGET(ctx, u) },
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code == http.StatusTooManyRequests || se.code >= 500
			}
			return true
		}),
	)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("tmdb decode %s: %w", path, err)
	}
	if c.cache != nil {
		if err := c.cache.set(cacheKey, v); err != nil {
			log.Printf("[tmdb] cache write failed: %v", err)
		}
	}
	return nil
}

type statusError struct {
	code   int
	status string
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("tmdb request failed: %s: %s", e.status, e.body)
}

func (c *tmdbClient) doGET(ctx context.Context, u string) ([]byte, error) {
	c.throttleMu.Lock()
	since := time.Since(c.lastRequest)
	if since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
	c.throttleMu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &statusError{
			code:   resp.StatusCode,
			status: resp.Status,
			body:   strings.TrimSpace(string(body)),
		}
	}
	return io.ReadAll(resp.Body)
}
