package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"bompick/models"
	"bompick/services/catalog"
)

type catalogService interface {
	StartSession(ctx context.Context) *catalog.Session
	Availability(ctx context.Context, kind models.MediaKind, id int64) ([]models.Platform, error)
	Search(ctx context.Context, query string, page int) ([]models.Content, error)
}

var _ catalogService = (*catalog.Service)(nil)

// CatalogHandler exposes the fetch pipeline's state. A session starts lazily
// on the first state read and can be replaced via refresh; sessions run on the
// handler's base context so a process shutdown abandons them.
type CatalogHandler struct {
	Service catalogService

	baseCtx context.Context

	mu      sync.Mutex
	current *catalog.Session
}

func NewCatalogHandler(ctx context.Context, service catalogService) *CatalogHandler {
	return &CatalogHandler{Service: service, baseCtx: ctx}
}

func (h *CatalogHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/catalog", h.State).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/refresh", h.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/api/catalog/{mediaType}/{id}/providers", h.Availability).Methods(http.MethodGet)
	r.HandleFunc("/api/search", h.Search).Methods(http.MethodGet)
}

// session returns the current fetch session, starting one if needed.
func (h *CatalogHandler) session() *catalog.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		h.current = h.Service.StartSession(h.baseCtx)
	}
	return h.current
}

// CurrentSnapshot returns the latest published pipeline state. It satisfies
// the browse handler's dataset source.
func (h *CatalogHandler) CurrentSnapshot() catalog.Snapshot {
	return h.session().Snapshot()
}

// State serves the reactive pipeline read: contents, loading flags and the
// session-level error.
func (h *CatalogHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.session().Snapshot())
}

// Refresh abandons the current session and starts a fresh one. Failed
// upstream requests are never cached, so a refresh always recovers from
// errors; successful responses still inside the cache TTL are replayed from
// disk (disable the cache via cache_ttl_hours = 0 for always-live refreshes).
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.current != nil {
		h.current.Cancel()
	}
	h.current = h.Service.StartSession(h.baseCtx)
	session := h.current
	h.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(session.Snapshot())
}

// Availability serves the subscription platforms for one title.
func (h *CatalogHandler) Availability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, ok := models.ParseMediaKind(vars["mediaType"])
	if !ok {
		http.Error(w, "unknown media type", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	platforms, err := h.Service.Availability(r.Context(), kind, id)
	if err != nil {
		http.Error(w, "availability lookup failed", http.StatusBadGateway)
		return
	}
	if platforms == nil {
		platforms = []models.Platform{}
	}
	writeJSON(w, map[string]any{"ottPlatforms": platforms})
}

// Search proxies the upstream multi-search, returning transformed titles.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	contents, err := h.Service.Search(r.Context(), query, page)
	if err != nil {
		http.Error(w, "search failed", http.StatusBadGateway)
		return
	}
	if contents == nil {
		contents = []models.Content{}
	}
	writeJSON(w, map[string]any{"results": contents})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
