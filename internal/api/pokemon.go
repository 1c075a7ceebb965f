package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meur/dexforge/internal/catalog"
	"github.com/meur/dexforge/internal/pokeapi"
)

// respondFetchError maps an upstream failure to a JSON error
func respondFetchError(w http.ResponseWriter, err error, what string) {
	switch {
	case pokeapi.IsNotFound(err):
		respondError(w, http.StatusNotFound, what+" not found")
	case catalog.IsFetchFailure(err):
		respondError(w, http.StatusBadGateway, "Failed to fetch "+what)
	default:
		respondError(w, http.StatusInternalServerError, "Failed to load "+what)
	}
}

// handleGetPokemonList returns one catalog page
func (s *Server) handleGetPokemonList(w http.ResponseWriter, r *http.Request) {
	page := s.catalog.Paginator().ParsePage(r.URL.Query().Get("page"))

	view, err := s.catalog.List(r.Context(), page)
	if err != nil {
		var fe *pokeapi.FetchError
		if errors.As(err, &fe) {
			respondError(w, http.StatusBadGateway, "Failed to fetch Pokémon")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load Pokémon")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleGetPokemon returns the detail view of a Pokemon
func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := catalog.ParseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	q := r.URL.Query()
	view, err := s.catalog.Detail(r.Context(), id, catalog.DetailOptions{
		MoveFilter:     q.Get("moves"),
		AllMoves:       true,
		SpriteCategory: q.Get("sprites"),
	})
	if err != nil {
		respondFetchError(w, err, "Pokémon")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleGetEvolution returns the stage buckets of a Pokemon's chain
func (s *Server) handleGetEvolution(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	stages, err := s.catalog.Evolution(r.Context(), id)
	if err != nil {
		respondFetchError(w, err, "evolution chain")
		return
	}
	respondJSON(w, http.StatusOK, catalog.NewEvolutionView(stages))
}

// handleGetMoves returns the reduced, filtered moves of a Pokemon
func (s *Server) handleGetMoves(w http.ResponseWriter, r *http.Request) {
	id, ok := catalog.ParseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	view, err := s.catalog.Moves(r.Context(), id, r.URL.Query().Get("filter"))
	if err != nil {
		respondFetchError(w, err, "Pokémon")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleGetSprites returns the classified sprites of a Pokemon
func (s *Server) handleGetSprites(w http.ResponseWriter, r *http.Request) {
	id, ok := catalog.ParseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	view, err := s.catalog.Sprites(r.Context(), id, r.URL.Query().Get("category"))
	if err != nil {
		respondFetchError(w, err, "Pokémon")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleGetMove returns a move's shaped detail
func (s *Server) handleGetMove(w http.ResponseWriter, r *http.Request) {
	name, ok := catalog.ParseID(chi.URLParam(r, "name"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid move")
		return
	}

	detail, err := s.catalog.MoveDetail(r.Context(), name)
	if err != nil {
		respondFetchError(w, err, "move")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// handleGetAbility returns an ability's shaped detail
func (s *Server) handleGetAbility(w http.ResponseWriter, r *http.Request) {
	name, ok := catalog.ParseID(chi.URLParam(r, "name"))
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid ability")
		return
	}

	info, err := s.catalog.AbilityDetail(r.Context(), name)
	if err != nil {
		respondFetchError(w, err, "ability")
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// handleSearch resolves a query to a target or suggestions
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondFetchError(w, err, "catalog index")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
