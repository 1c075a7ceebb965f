package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/meur/dexforge/internal/catalog"
	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/pokeapi"
	"github.com/meur/dexforge/internal/web"
)

type listPage struct {
	Meta  web.Meta
	View  *catalog.ListView
	Error string
	Prev  int
	Next  int
}

type detailPage struct {
	Meta web.Meta
	View *catalog.DetailView
}

type searchPage struct {
	Meta   web.Meta
	Result *catalog.SearchResult
}

type movePage struct {
	Meta web.Meta
	Move *dex.MoveDetail
	From int
}

type errorPage struct {
	Meta      web.Meta
	Heading   string
	Message   string
	Retry     string
	RequestID string
}

// render writes the page only once it rendered completely; a template
// failure becomes a plain 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.pages.Render(&buf, page, data); err != nil {
		s.logger.Error("render failed",
			zap.String("page", page),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderError shows a failure with a retry link back to the same URL
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.renderFailure(w, r, err, "Pokémon")
}

// renderFailure is renderError naming what could not be found
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, err error, subject string) {
	page := errorPage{
		Meta:      web.Meta{Title: "Something went wrong | Pokédex"},
		Heading:   "Something went wrong",
		Message:   "Could not load data from the Pokémon API. Please try again.",
		Retry:     r.URL.RequestURI(),
		RequestID: middleware.GetReqID(r.Context()),
	}
	status := http.StatusBadGateway

	switch {
	case pokeapi.IsNotFound(err):
		page.Meta.Title = "Not found | Pokédex"
		page.Heading = dex.DisplayName(subject) + " not found"
		page.Message = "This " + subject + " does not exist."
		page.Retry = ""
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case !catalog.IsFetchFailure(err):
		status = http.StatusInternalServerError
	}

	s.logger.Warn("page failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", page.RequestID),
		zap.Error(err))
	s.render(w, r, status, "error", page)
}

// handleListPage renders a catalog page (?page=N, clamped)
func (s *Server) handleListPage(w http.ResponseWriter, r *http.Request) {
	pager := s.catalog.Paginator()
	page := pager.ParsePage(r.URL.Query().Get("page"))

	view, err := s.catalog.List(r.Context(), page)
	data := listPage{
		Meta: s.listMeta(r, page),
		View: view,
		Prev: view.Page.Current - 1,
		Next: view.Page.Current + 1,
	}
	status := http.StatusOK
	if err != nil {
		s.logger.Warn("catalog page failed", zap.Int("page", page), zap.Error(err))
		data.Error = "Could not load Pokémon. Check your connection and try again."
		status = http.StatusBadGateway
	}
	s.render(w, r, status, "list", data)
}

// handleDetailPage renders a single Pokemon
func (s *Server) handleDetailPage(w http.ResponseWriter, r *http.Request) {
	id, ok := catalog.ParseID(chi.URLParam(r, "id"))
	if !ok {
		s.renderError(w, r, pokeapi.ErrNotFound)
		return
	}

	q := r.URL.Query()
	view, err := s.catalog.Detail(r.Context(), id, catalog.DetailOptions{
		MoveFilter:     q.Get("moves"),
		AllMoves:       q.Get("all_moves") == "1",
		SpriteCategory: q.Get("sprites"),
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "detail", detailPage{Meta: s.detailMeta(r, view), View: view})
}

// handleSearchPage redirects to a direct hit or lists suggestions
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	result, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if result.Query == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if result.Target != "" {
		http.Redirect(w, r, "/pokemon/"+url.PathEscape(result.Target), http.StatusFound)
		return
	}
	s.render(w, r, http.StatusOK, "search", searchPage{
		Meta:   web.Meta{Title: "Search: " + result.Query + " | Pokédex"},
		Result: result,
	})
}

// handleMovePage renders a move's power, accuracy, PP, type and effect.
// ?from=<id> links back to the Pokemon the move was opened from.
func (s *Server) handleMovePage(w http.ResponseWriter, r *http.Request) {
	name, ok := catalog.ParseID(chi.URLParam(r, "name"))
	if !ok {
		s.renderFailure(w, r, pokeapi.ErrNotFound, "move")
		return
	}

	detail, err := s.catalog.MoveDetail(r.Context(), name)
	if err != nil {
		s.renderFailure(w, r, err, "move")
		return
	}

	from, _ := strconv.Atoi(r.URL.Query().Get("from"))
	if from < 0 {
		from = 0
	}
	title := dex.DisplayName(detail.Name)
	s.render(w, r, http.StatusOK, "move", movePage{
		Meta: web.Meta{
			Title:       title + " | Pokédex",
			Description: title + ": " + detail.Effect,
			Canonical:   s.baseURL(r) + "/moves/" + url.PathEscape(detail.Name),
		},
		Move: detail,
		From: from,
	})
}

// handlePreviewImage draws the social preview card
func (s *Server) handlePreviewImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	p, err := s.catalog.Pokemon(r.Context(), strconv.Itoa(id))
	if err != nil {
		if pokeapi.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Warn("preview source failed", zap.Int("id", id), zap.Error(err))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}

	img, err := s.preview.Render(r.Context(), *p)
	if err != nil {
		s.logger.Error("preview render failed", zap.Int("id", id), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(img)
}
