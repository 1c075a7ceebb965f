package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/meur/dexforge/internal/catalog"
	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/web"
)

// baseURL is the configured public URL, or the one the request came in on
func (s *Server) baseURL(r *http.Request) string {
	if s.opts.PublicURL != "" {
		return strings.TrimRight(s.opts.PublicURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func (s *Server) listMeta(r *http.Request, page int) web.Meta {
	meta := web.Meta{
		Title:       "Pokédex - Gotta catch 'em all!",
		Description: "Explore the world of Pokémon with an interactive Pokédex. Browse types, stats, abilities and evolutions.",
		Canonical:   s.baseURL(r) + "/",
	}
	if page > 1 {
		meta.Canonical = fmt.Sprintf("%s/?page=%d", s.baseURL(r), page)
	}
	return meta
}

// detailMeta builds the canonical URL, social preview and app-link hints of a detail page
func (s *Server) detailMeta(r *http.Request, view *catalog.DetailView) web.Meta {
	base := s.baseURL(r)
	name := dex.DisplayName(view.Name)
	canonical := fmt.Sprintf("%s/pokemon/%d", base, view.ID)

	description := fmt.Sprintf("%s #%03d", name, view.ID)
	if len(view.Types) > 0 {
		description += " - " + strings.Join(view.Types, "/") + " type"
	}
	if view.Species != nil && view.Species.FlavorText != "" {
		description += ". " + view.Species.FlavorText
	}

	meta := web.Meta{
		Title:       fmt.Sprintf("%s #%03d | Pokédex", name, view.ID),
		Description: description,
		Canonical:   canonical,
		Image:       fmt.Sprintf("%s/og/%d.png", base, view.ID),
		AppLinks:    []web.AppLink{{Property: "al:web:url", Content: canonical}},
	}

	if s.opts.AppScheme != "" {
		deepLink := fmt.Sprintf("%s://pokemon/%d", s.opts.AppScheme, view.ID)
		meta.AppLinks = append(meta.AppLinks,
			web.AppLink{Property: "al:ios:url", Content: deepLink},
			web.AppLink{Property: "al:ios:app_name", Content: "Pokédex"},
			web.AppLink{Property: "al:android:url", Content: deepLink},
			web.AppLink{Property: "al:android:app_name", Content: "Pokédex"},
		)
		if s.opts.AndroidPackage != "" {
			meta.AppLinks = append(meta.AppLinks, web.AppLink{Property: "al:android:package", Content: s.opts.AndroidPackage})
		}
	}
	return meta
}
