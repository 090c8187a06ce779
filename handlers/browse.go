package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"bompick/models"
	"bompick/services/browse"
	"bompick/services/catalog"
)

// datasetSource provides the latest merged dataset for browse views.
type datasetSource interface {
	CurrentSnapshot() catalog.Snapshot
}

var _ datasetSource = (*CatalogHandler)(nil)

// BrowseHandler exposes per-client filtered views over the merged dataset.
// Each read pulls the catalog's latest snapshot into the view first, so the
// view recomputes (and its pagination resets) exactly when the dataset or the
// criteria changed.
type BrowseHandler struct {
	Registry *browse.Registry
	Dataset  datasetSource
}

func NewBrowseHandler(registry *browse.Registry, dataset datasetSource) *BrowseHandler {
	return &BrowseHandler{Registry: registry, Dataset: dataset}
}

func (h *BrowseHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/browse", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/browse/{id}", h.State).Methods(http.MethodGet)
	r.HandleFunc("/api/browse/{id}", h.Remove).Methods(http.MethodDelete)
	r.HandleFunc("/api/browse/{id}/toggle/{dimension}/{value}", h.Toggle).Methods(http.MethodPost)
	r.HandleFunc("/api/browse/{id}/sort", h.SetSort).Methods(http.MethodPost)
	r.HandleFunc("/api/browse/{id}/query", h.SetQuery).Methods(http.MethodPost)
	r.HandleFunc("/api/browse/{id}/reset", h.Reset).Methods(http.MethodPost)
	r.HandleFunc("/api/browse/{id}/more", h.LoadMore).Methods(http.MethodPost)
}

func (h *BrowseHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, view := h.Registry.Create()
	h.syncView(view)
	writeJSON(w, map[string]any{"id": id, "view": view.Snapshot()})
}

func (h *BrowseHandler) State(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	h.syncView(view)
	writeJSON(w, view.Snapshot())
}

func (h *BrowseHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.Registry.Remove(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// Toggle flips one selection value on one filter dimension.
func (h *BrowseHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	value := vars["value"]
	switch vars["dimension"] {
	case "ott":
		p, ok := models.ParsePlatform(value)
		if !ok {
			http.Error(w, "unknown platform", http.StatusBadRequest)
			return
		}
		view.TogglePlatform(p)
	case "genre":
		g, ok := models.ParseGenre(value)
		if !ok {
			http.Error(w, "unknown genre", http.StatusBadRequest)
			return
		}
		view.ToggleGenre(g)
	case "country":
		c, ok := models.ParseCountry(value)
		if !ok {
			http.Error(w, "unknown country", http.StatusBadRequest)
			return
		}
		view.ToggleCountry(c)
	case "type":
		t, ok := models.ParseContentType(value)
		if !ok {
			http.Error(w, "unknown content type", http.StatusBadRequest)
			return
		}
		view.ToggleContentType(t)
	default:
		http.Error(w, "unknown filter dimension", http.StatusBadRequest)
		return
	}
	h.syncView(view)
	writeJSON(w, view.Snapshot())
}

func (h *BrowseHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	var body struct {
		SortBy models.SortOption `json:"sortBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if !models.ValidSortOption(body.SortBy) {
		http.Error(w, "unknown sort option", http.StatusBadRequest)
		return
	}
	view.SetSort(body.SortBy)
	h.syncView(view)
	writeJSON(w, view.Snapshot())
}

func (h *BrowseHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	var body struct {
		Query string `json:"q"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	view.SetQuery(body.Query)
	h.syncView(view)
	writeJSON(w, view.Snapshot())
}

func (h *BrowseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	view.ResetFilters()
	h.syncView(view)
	writeJSON(w, view.Snapshot())
}

func (h *BrowseHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	view, ok := h.view(w, r)
	if !ok {
		return
	}
	h.syncView(view)
	view.LoadMore()
	writeJSON(w, view.Snapshot())
}

func (h *BrowseHandler) view(w http.ResponseWriter, r *http.Request) (*browse.View, bool) {
	view, ok := h.Registry.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "unknown browse session", http.StatusNotFound)
		return nil, false
	}
	return view, true
}

// syncView feeds the catalog's latest dataset revision into the view. The view
// ignores revisions it has already applied.
func (h *BrowseHandler) syncView(view *browse.View) {
	snap := h.Dataset.CurrentSnapshot()
	view.UpdateContents(snap.Contents, snap.Revision)
}
