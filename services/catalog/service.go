package catalog

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"bompick/config"
	"bompick/models"
)

// platformOrder fixes the worklist order so sessions are deterministic up to
// request completion timing.
var platformOrder = []models.Platform{
	models.PlatformNetflix,
	models.PlatformDisney,
	models.PlatformTving,
	models.PlatformWavve,
	models.PlatformCoupang,
	models.PlatformWatcha,
}

// Service aggregates the upstream catalog into merged, display-ready titles.
type Service struct {
	client         *tmdbClient
	primary        map[models.Platform]bool
	primaryPages   int
	secondaryPages int
	maxConcurrent  int
	region         string
	defaultCountry models.Country

	// rev numbers snapshot publications across all sessions of this service,
	// so a refreshed session cannot reuse a revision a consumer already saw.
	rev atomic.Int64
}

func NewService(tmdbCfg config.TMDB, catCfg config.Catalog, httpc *http.Client) *Service {
	// cache_ttl_hours = 0 disables the response cache entirely; without it
	// every session (including refreshes) goes to the upstream.
	var cache *fileCache
	if tmdbCfg.CacheTTLHours > 0 {
		cache = newFileCache(afero.NewOsFs(), filepath.Join(tmdbCfg.CacheDir, "tmdb"), tmdbCfg.CacheTTLHours)
	}

	primary := make(map[models.Platform]bool, len(catCfg.PrimaryPlatforms))
	for _, name := range catCfg.PrimaryPlatforms {
		p, ok := parsePlatform(name)
		if !ok {
			log.Printf("[catalog] ignoring unknown primary platform %q", name)
			continue
		}
		primary[p] = true
	}

	defaultCountry := models.CountryUS
	if c := models.Country(catCfg.DefaultCountry); internalCountries[c] {
		defaultCountry = c
	} else if catCfg.DefaultCountry != "" {
		log.Printf("[catalog] ignoring unknown default country %q", catCfg.DefaultCountry)
	}

	maxConcurrent := catCfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	primaryPages := catCfg.PrimaryPages
	if primaryPages <= 0 {
		primaryPages = 3
	}
	secondaryPages := catCfg.SecondaryPages
	if secondaryPages <= 0 {
		secondaryPages = 2
	}

	return &Service{
		client:         newTMDBClient(tmdbCfg.APIKey, tmdbCfg.BaseURL, tmdbCfg.Language, tmdbCfg.WatchRegion, httpc, cache),
		primary:        primary,
		primaryPages:   primaryPages,
		secondaryPages: secondaryPages,
		maxConcurrent:  maxConcurrent,
		region:         tmdbCfg.WatchRegion,
		defaultCountry: defaultCountry,
	}
}

// StartSession kicks off one full fetch of the catalog and returns immediately.
// The returned session publishes snapshots as the phases complete; cancel the
// parent context (or the session) to abandon it.
func (s *Service) StartSession(ctx context.Context) *Session {
	session := newSession(ctx, s)
	go session.run()
	return session
}

// buildWorklist partitions the per-platform, per-kind, per-page requests into
// the fast primary phase and the background secondary phase.
func (s *Service) buildWorklist() (primary, secondary []fetchTask) {
	for _, platform := range platformOrder {
		providerID := platformProviderIDs[platform]
		pages := s.secondaryPages
		if s.primary[platform] {
			pages = s.primaryPages
		}
		for page := 1; page <= pages; page++ {
			for _, kind := range []models.MediaKind{models.MediaKindMovie, models.MediaKindTV} {
				task := fetchTask{platform: platform, providerID: providerID, kind: kind, page: page}
				if s.primary[platform] {
					primary = append(primary, task)
				} else {
					secondary = append(secondary, task)
				}
			}
		}
	}
	return primary, secondary
}

// Availability resolves the subscription platforms one title is currently
// streamable on in the configured region.
func (s *Service) Availability(ctx context.Context, kind models.MediaKind, id int64) ([]models.Platform, error) {
	raw, err := s.client.watchProviders(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return mapProviders(raw, s.region), nil
}

// Search runs the upstream multi-search and returns transformed titles, each
// enriched with its current availability. Per-title availability failures are
// swallowed; the title just comes back with no platforms.
func (s *Service) Search(ctx context.Context, query string, page int) ([]models.Content, error) {
	if page <= 0 {
		page = 1
	}
	raw, err := s.client.searchMulti(ctx, query, page)
	if err != nil {
		return nil, err
	}

	items := make([]tmdbItem, 0, len(raw.Results))
	kinds := make([]models.MediaKind, 0, len(raw.Results))
	for _, item := range raw.Results {
		switch item.MediaType {
		case string(models.MediaKindMovie):
			items = append(items, item)
			kinds = append(kinds, models.MediaKindMovie)
		case string(models.MediaKindTV):
			items = append(items, item)
			kinds = append(kinds, models.MediaKindTV)
		}
	}

	platforms := make([][]models.Platform, len(items))
	p := pool.New().WithMaxGoroutines(s.maxConcurrent)
	for i := range items {
		i := i
		p.Go(func() {
			resolved, err := s.Availability(ctx, kinds[i], items[i].ID)
			if err != nil {
				log.Printf("[catalog] availability for %s %d failed: %v", kinds[i], items[i].ID, err)
				return
			}
			platforms[i] = resolved
		})
	}
	p.Wait()

	contents := make([]models.Content, 0, len(items))
	for i, item := range items {
		contents = append(contents, transformItem(item, kinds[i], platforms[i], s.defaultCountry))
	}
	return contents, nil
}
