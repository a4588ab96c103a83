package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rsmmonaem/voter-talika/internal/domain"
	apperrors "github.com/rsmmonaem/voter-talika/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions configures the outer surface of the API.
type RouterOptions struct {
	AllowedOrigins []string
	// StaticDir holds a built web bundle; empty disables static hosting.
	StaticDir string
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(voterHandler *VoterHandler, logger domain.Logger, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "voter-talika"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/voters", voterHandler.SearchVoters).Methods(http.MethodGet)
	api.HandleFunc("/filters", voterHandler.GetFilters).Methods(http.MethodGet)
	api.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAppError(w, apperrors.NewNotFoundError("Route not found"))
	})

	if opts.StaticDir != "" {
		router.PathPrefix("/").Handler(spaHandler{dir: opts.StaticDir})
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}

// spaHandler serves files from dir and falls back to index.html so client
// side routes resolve.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
