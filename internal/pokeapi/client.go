package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meur/dexforge/internal/models"
	"github.com/meur/dexforge/internal/storage"
)

// maxBodyBytes bounds a single upstream document
const maxBodyBytes = 8 << 20

// Client issues read-only GET requests against PokéAPI
type Client struct {
	baseURL string
	http    *http.Client
	cache   storage.Cache
	ttl     time.Duration
	logger  *zap.Logger
	limit   int
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache caches successful responses for ttl
func WithCache(cache storage.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.ttl = ttl
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithConcurrency bounds in-flight requests of a batch
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// New creates a client for the API rooted at baseURL (e.g. https://pokeapi.co/api/v2)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   storage.NopCache{},
		logger:  zap.NewNop(),
		limit:   20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// GetJSON fetches rawURL and decodes the JSON body into v, going through the cache
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	key := storage.KeyFor(rawURL)
	if body, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Debug("cache read failed", zap.String("url", rawURL), zap.Error(err))
	} else if ok {
		err := json.Unmarshal(body, v)
		if err == nil {
			return nil
		}
		c.logger.Debug("cache entry undecodable", zap.String("url", rawURL), zap.Error(err))
		resetTarget(v)
	}

	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &FetchError{URL: rawURL, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Debug("cache write failed", zap.String("url", rawURL), zap.Error(err))
	}
	return nil
}

// resetTarget zeroes what v points to, dropping fields a failed decode left behind
func resetTarget(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream request",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("reading response: %w", err)}
	}
	return body, nil
}

// ListPokemon returns one window of the catalog listing
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*models.PokemonListResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var list models.PokemonListResponse
	if err := c.GetJSON(ctx, c.endpoint("pokemon")+"?"+q.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPokemon fetches /pokemon/{idOrName}
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*models.Pokemon, error) {
	return c.GetPokemonByURL(ctx, c.endpoint("pokemon", idOrName))
}

// GetPokemonByURL fetches a Pokemon from a listing reference
func (c *Client) GetPokemonByURL(ctx context.Context, rawURL string) (*models.Pokemon, error) {
	var p models.Pokemon
	if err := c.GetJSON(ctx, rawURL, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetSpecies fetches /pokemon-species/{id}
func (c *Client) GetSpecies(ctx context.Context, id int) (*models.Species, error) {
	var s models.Species
	if err := c.GetJSON(ctx, c.endpoint("pokemon-species", strconv.Itoa(id)), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetEvolutionChainByURL fetches the chain a species references
func (c *Client) GetEvolutionChainByURL(ctx context.Context, rawURL string) (*models.EvolutionChain, error) {
	if rawURL == "" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("species has no evolution chain")}
	}
	var chain models.EvolutionChain
	if err := c.GetJSON(ctx, rawURL, &chain); err != nil {
		return nil, err
	}
	return &chain, nil
}

// GetAbility fetches /ability/{name}
func (c *Client) GetAbility(ctx context.Context, name string) (*models.Ability, error) {
	return c.GetAbilityByURL(ctx, c.endpoint("ability", name))
}

// GetAbilityByURL fetches an ability from a slot reference
func (c *Client) GetAbilityByURL(ctx context.Context, rawURL string) (*models.Ability, error) {
	var a models.Ability
	if err := c.GetJSON(ctx, rawURL, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetMove fetches /move/{name}
func (c *Client) GetMove(ctx context.Context, name string) (*models.Move, error) {
	var m models.Move
	if err := c.GetJSON(ctx, c.endpoint("move", name), &m); err != nil {
		return nil, err
	}
	return &m, nil
}
