// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database and report paths, the external
// search/summarization provider credentials, rate limiting, and observability.
//
// Configuration is read exactly once at startup; the rest of the application
// receives an explicit Config value instead of performing ambient environment
// lookups.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-research-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// SearchConfig configures the external web-search provider.
//
// When APIKey is empty the application selects the free DuckDuckGo
// Instant Answer fallback at construction time instead of SerpAPI;
// a missing key is a supported configuration, not an error.
type SearchConfig struct {
	APIKey      string // SERP_API_KEY (empty enables the fallback provider)
	BaseURL     string // SERP_BASE_URL
	FallbackURL string // DDG_BASE_URL
	Country     string // SEARCH_GL, provider locale (e.g. "us")
	Language    string // SEARCH_HL, provider UI language (e.g. "en")
}

// SummarizeConfig configures the hosted chat-completion API used for
// research summaries. A missing APIKey selects the deterministic local
// fallback summarizer at construction time.
type SummarizeConfig struct {
	APIKey      string        // NEBIUS_API_KEY
	BaseURL     string        // NEBIUS_BASE_URL (chat/completions endpoint)
	Model       string        // NEBIUS_MODEL
	MaxTokens   int           // NEBIUS_MAX_TOKENS
	Temperature float64       // NEBIUS_TEMPERATURE
	Timeout     time.Duration // SUMMARY_TIMEOUT (per-request HTTP timeout)
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App storage
	DBPath      string // SQLite path for searches/content/summaries/users
	ReportsDir  string // directory for generated report files
	HistoryPath string // flat JSON file with per-user report history

	// External gateways
	Search    SearchConfig
	Summarize SummarizeConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App storage
		DBPath:      getenv("DB_PATH", "research_data.db"),
		ReportsDir:  getenv("REPORTS_DIR", "reports"),
		HistoryPath: getenv("HISTORY_PATH", "user_history.json"),

		// External gateways
		Search: SearchConfig{
			APIKey:      getenv("SERP_API_KEY", ""),
			BaseURL:     getenv("SERP_BASE_URL", "https://serpapi.com/search"),
			FallbackURL: getenv("DDG_BASE_URL", "https://api.duckduckgo.com/"),
			Country:     getenv("SEARCH_GL", "us"),
			Language:    getenv("SEARCH_HL", "en"),
		},
		Summarize: SummarizeConfig{
			APIKey:      getenv("NEBIUS_API_KEY", ""),
			BaseURL:     getenv("NEBIUS_BASE_URL", "https://api.studio.nebius.ai/v1/chat/completions"),
			Model:       getenv("NEBIUS_MODEL", "meta-llama/Meta-Llama-3.1-70B-Instruct"),
			MaxTokens:   getint("NEBIUS_MAX_TOKENS", 800),
			Temperature: getfloat("NEBIUS_TEMPERATURE", 0.7),
			Timeout:     getdur("SUMMARY_TIMEOUT", 30*time.Second),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-research-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.ReportsDir) == "" {
		return cfg, errors.New("REPORTS_DIR must not be empty")
	}
	if strings.TrimSpace(cfg.HistoryPath) == "" {
		return cfg, errors.New("HISTORY_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.Search.BaseURL) == "" || strings.TrimSpace(cfg.Search.FallbackURL) == "" {
		return cfg, errors.New("search provider URLs must not be empty")
	}
	if strings.TrimSpace(cfg.Summarize.BaseURL) == "" {
		return cfg, errors.New("NEBIUS_BASE_URL must not be empty")
	}
	if cfg.Summarize.MaxTokens <= 0 {
		return cfg, errors.New("NEBIUS_MAX_TOKENS must be > 0")
	}
	if cfg.Summarize.Temperature < 0 || cfg.Summarize.Temperature > 2 {
		return cfg, errors.New("NEBIUS_TEMPERATURE must be in [0,2]")
	}
	if cfg.Summarize.Timeout <= 0 {
		return cfg, errors.New("SUMMARY_TIMEOUT must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
