package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultAgentName is the name advertised on the A2A agent card
	DefaultAgentName = "ToolboxAgent"

	// DefaultAPIPort matches the port the toolbox front end expects the API on
	DefaultAPIPort = 8000

	// DefaultAgentPort is used by the A2A agent server
	DefaultAgentPort = 8081

	// CommentServiceFixture selects the canned comment generator
	CommentServiceFixture = "fixture"
	// CommentServiceLive selects the HTTP-backed comment generator
	CommentServiceLive = "live"
)

// Config holds the application configuration
type Config struct {
	// Toolbox client configuration
	APIBaseURL          string
	CommentService      string // "fixture" or "live"
	CommentFixtureDelay time.Duration
	ExportDir           string

	// Logging
	LogLevel  string
	LogFormat string // "console" or "json"

	// Server configuration
	ServerHost         string
	ServerPort         int
	CORSAllowedOrigins []string

	// Agent configuration
	AgentName    string
	AgentVersion string
	AgentURL     string
	AgentPort    int

	// Authentication for the A2A agent
	AuthType  string // "jwt", "apikey" or empty
	JWTSecret string
	APIKey    string

	// LLM configuration
	LLMProvider    string // "openai", "azure", "openai-sdk", "mock"
	LLMModel       string
	LLMAPIKey      string
	LLMServiceURL  string
	LLMMaxTokens   int
	LLMTimeout     int // in seconds
	LLMTemperature float64

	// Transcript cache
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	TranscriptCacheTTL time.Duration
}

var (
	v        *viper.Viper
	initOnce sync.Once
)

// GetViper returns the shared viper instance, creating it on first use
func GetViper() *viper.Viper {
	initOnce.Do(func() {
		loadDotEnv()
		v = viper.New()
		setDefaults(v)
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		if path := os.Getenv("TOOLBOX_CONFIG"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				log.Printf("Failed to read config file %s: %v", path, err)
			}
		}
	})
	return v
}

// loadDotEnv loads environment variables from the nearest .env file
func loadDotEnv() {
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			log.Printf("Loaded configuration from %s file", path)
			return
		}
	}
}

// setDefaults registers the default value of every configuration key
func setDefaults(v *viper.Viper) {
	v.SetDefault("TOOLBOX_API_BASE_URL", fmt.Sprintf("http://localhost:%d", DefaultAPIPort))
	v.SetDefault("COMMENT_SERVICE", CommentServiceFixture)
	v.SetDefault("COMMENT_FIXTURE_DELAY", "2s")
	v.SetDefault("EXPORT_DIR", ".")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", DefaultAPIPort)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("AGENT_NAME", DefaultAgentName)
	v.SetDefault("AGENT_VERSION", "1.0.0")
	v.SetDefault("AGENT_URL", fmt.Sprintf("http://localhost:%d", DefaultAgentPort))
	v.SetDefault("AGENT_PORT", DefaultAgentPort)

	v.SetDefault("AUTH_TYPE", "apikey")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("API_KEY", "")

	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("LLM_MODEL", "gpt-3.5-turbo")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_SERVICE_URL", "")
	v.SetDefault("LLM_MAX_TOKENS", 1000)
	v.SetDefault("LLM_TIMEOUT", 60)
	v.SetDefault("LLM_TEMPERATURE", 0.7)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TRANSCRIPT_CACHE_TTL", "24h")
}

// NewConfig creates a new configuration from the shared viper instance
func NewConfig() *Config {
	return FromViper(GetViper())
}

// FromViper builds a Config from the given viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		APIBaseURL:          strings.TrimRight(v.GetString("TOOLBOX_API_BASE_URL"), "/"),
		CommentService:      strings.ToLower(v.GetString("COMMENT_SERVICE")),
		CommentFixtureDelay: v.GetDuration("COMMENT_FIXTURE_DELAY"),
		ExportDir:           v.GetString("EXPORT_DIR"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		ServerHost:         v.GetString("SERVER_HOST"),
		ServerPort:         v.GetInt("SERVER_PORT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),

		AgentName:    v.GetString("AGENT_NAME"),
		AgentVersion: v.GetString("AGENT_VERSION"),
		AgentURL:     v.GetString("AGENT_URL"),
		AgentPort:    v.GetInt("AGENT_PORT"),

		AuthType:  strings.ToLower(v.GetString("AUTH_TYPE")),
		JWTSecret: v.GetString("JWT_SECRET"),
		APIKey:    v.GetString("API_KEY"),

		LLMProvider:    strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMModel:       v.GetString("LLM_MODEL"),
		LLMAPIKey:      v.GetString("LLM_API_KEY"),
		LLMServiceURL:  v.GetString("LLM_SERVICE_URL"),
		LLMMaxTokens:   v.GetInt("LLM_MAX_TOKENS"),
		LLMTimeout:     v.GetInt("LLM_TIMEOUT"),
		LLMTemperature: v.GetFloat64("LLM_TEMPERATURE"),

		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		TranscriptCacheTTL: v.GetDuration("TRANSCRIPT_CACHE_TTL"),
	}
}

// NewDefaultViper returns a viper instance holding only the defaults.
// Tests use it to build configurations without touching the environment.
func NewDefaultViper() *viper.Viper {
	nv := viper.New()
	setDefaults(nv)
	return nv
}

// Validate reports configuration values that cannot work together
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("TOOLBOX_API_BASE_URL must not be empty")
	}
	switch c.CommentService {
	case CommentServiceFixture, CommentServiceLive:
	default:
		return fmt.Errorf("unsupported comment service %q (want %q or %q)", c.CommentService, CommentServiceFixture, CommentServiceLive)
	}
	switch c.AuthType {
	case "", "apikey", "jwt":
	default:
		return fmt.Errorf("unsupported auth type: %s", c.AuthType)
	}
	if c.AuthType == "jwt" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_TYPE is jwt")
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens)
	}
	return nil
}

// LLMTimeoutDuration returns the per-call LLM timeout
func (c *Config) LLMTimeoutDuration() time.Duration {
	if c.LLMTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.LLMTimeout) * time.Second
}

// ServerAddr returns the listen address of the API server
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// splitList splits a comma separated value, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
