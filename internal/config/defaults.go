package config

import "time"

// DefaultUpstreamURL is the public PokéAPI
const DefaultUpstreamURL = "https://pokeapi.co/api/v2"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		UpstreamURL:    DefaultUpstreamURL,
		SpriteBaseURL:  "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon",
		PageSize:       20,
		TotalItems:     1025,
		RequestTimeout: 15 * time.Second,
		CacheDriver:    "memory",
		CachePath:      "./dexforge-cache.db",
		CacheTTL:       24 * time.Hour,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AppScheme:      "dexforge",
		AndroidPackage: "app.dexforge",
		LogLevel:       "info",
		LogFormat:      "json",
	}
}
