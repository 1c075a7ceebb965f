package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meur/dexforge/internal/catalog"
	"github.com/meur/dexforge/internal/preview"
	"github.com/meur/dexforge/internal/web"
)

// Options holds presentation settings
type Options struct {
	PublicURL      string // base for canonical and deep links; derived per request when empty
	AppScheme      string
	AndroidPackage string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Server holds the HTTP server dependencies
type Server struct {
	catalog *catalog.Service
	pages   *web.Templates
	preview *preview.Renderer
	opts    Options
	logger  *zap.Logger
	router  chi.Router
}

// New creates a new HTTP server
func New(svc *catalog.Service, pages *web.Templates, renderer *preview.Renderer, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog: svc,
		pages:   pages,
		preview: renderer,
		opts:    opts,
		logger:  logger,
		router:  chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*"}
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(requestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.opts.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleListPage)
	s.router.Get("/pokemon/{id}", s.handleDetailPage)
	s.router.Get("/search", s.handleSearchPage)
	s.router.Get("/moves/{name}", s.handleMovePage)
	s.router.Get("/og/{id}.png", s.handlePreviewImage)

	s.router.Route("/api", func(r chi.Router) {
		// Catalog
		r.Get("/pokemon", s.handleGetPokemonList)
		r.Get("/pokemon/{id}", s.handleGetPokemon)
		r.Get("/pokemon/{id}/evolution", s.handleGetEvolution)
		r.Get("/pokemon/{id}/moves", s.handleGetMoves)
		r.Get("/pokemon/{id}/sprites", s.handleGetSprites)

		// Details
		r.Get("/moves/{name}", s.handleGetMove)
		r.Get("/abilities/{name}", s.handleGetAbility)
		r.Get("/search", s.handleSearch)
	})

	fileServer(s.router, "/static", http.FS(web.Static()))

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// fileServer serves static files from root under path
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("fileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
