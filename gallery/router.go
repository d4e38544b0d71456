// Package gallery serves the cataloged captures over HTTP.
package gallery

import (
	"encoding/json"
	"net/http"

	"github.com/esimov/gokachu/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
)

// Catalog is the read side of the capture catalog.
type Catalog interface {
	List(kind catalog.Kind) ([]catalog.Capture, error)
	Get(id string) (*catalog.Capture, error)
}

// NewRouter returns the gallery routes:
//
//	GET /ping
//	GET /captures?kind=video|photostrip
//	GET /captures/{id}
func NewRouter(c Catalog) http.Handler {
	h := &handlers{catalog: c}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Route("/captures", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.file)
	})
	return r
}

func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type handlers struct {
	catalog Catalog
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	kind := catalog.Kind(r.URL.Query().Get("kind"))
	switch kind {
	case "", catalog.KindVideo, catalog.KindPhotostrip:
	default:
		http.Error(w, "unknown capture kind", http.StatusBadRequest)
		return
	}

	captures, err := h.catalog.List(kind)
	if err != nil {
		http.Error(w, "failed to list captures", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(captures)
}

func (h *handlers) file(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to get capture", http.StatusInternalServerError)
		return
	}
	http.ServeFile(w, r, c.Path)
}
