package config

import "time"

// Config is the top-level dexforge configuration, corresponding to dexforge.yml.
type Config struct {
	Port           int           `yaml:"port" koanf:"port"`
	UpstreamURL    string        `yaml:"upstream_url" koanf:"upstream_url"`
	PublicURL      string        `yaml:"public_url" koanf:"public_url"` // base for canonical/deep links; derived from the request when empty
	SpriteBaseURL  string        `yaml:"sprite_base_url" koanf:"sprite_base_url"`
	PageSize       int           `yaml:"page_size" koanf:"page_size"`
	TotalItems     int           `yaml:"total_items" koanf:"total_items"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	CacheDriver    string        `yaml:"cache_driver" koanf:"cache_driver"`
	CachePath      string        `yaml:"cache_path" koanf:"cache_path"`
	CacheTTL       time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	AppScheme      string        `yaml:"app_scheme" koanf:"app_scheme"`
	AndroidPackage string        `yaml:"android_package" koanf:"android_package"`
	LogLevel       string        `yaml:"log_level" koanf:"log_level"`
	LogFormat      string        `yaml:"log_format" koanf:"log_format"`
}
