package config

import (
	"os"
	"strconv"
	"strings"
)

type ConfigStruct struct {
	LLM       LLMConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Spotify   SpotifyConfig
	Wikipedia WikipediaConfig
	Sentry    SentryConfig
	Options   Options
}

type LLMConfig struct {
	Provider    string // "gemini" or "openai"
	Temperature float32
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Enabled      bool
}

type WikipediaConfig struct {
	Enabled        bool
	TimeoutSeconds int
}

type SentryConfig struct {
	DSN     string
	Release string
}

type Options struct {
	Port     string
	LogLevel string
	GinMode  string
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// HasCredentials reports whether client-credentials lookups can be made.
func (s *SpotifyConfig) HasCredentials() bool {
	return s.Enabled && s.ClientID != "" && s.ClientSecret != ""
}

// NewConfig reads the process environment. The returned value is passed
// explicitly to every component that needs it.
func NewConfig() *ConfigStruct {
	return &ConfigStruct{
		LLM: LLMConfig{
			Provider:    getProvider(),
			Temperature: getTemperature(),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   getOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
			BaseURL: strings.TrimRight(getOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			Enabled:      os.Getenv("SPOTIFY_ENABLED") == "true",
		},
		Wikipedia: WikipediaConfig{
			Enabled:        os.Getenv("WIKIPEDIA_ENABLED") != "false",
			TimeoutSeconds: getWikipediaTimeout(),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Release: os.Getenv("RELEASE"),
		},
		Options: Options{
			Port:     getOrDefault("PORT", "8080"),
			LogLevel: getOrDefault("LOG_LEVEL", "info"),
			GinMode:  os.Getenv("GIN_MODE"),
		},
	}
}

func getOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getProvider lowercases LLM_PROVIDER. Unknown names pass through so the
// completer constructor can reject them at startup.
func getProvider() string {
	if p := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))); p != "" {
		return p
	}
	return ProviderGemini
}

func getTemperature() float32 {
	tempStr := os.Getenv("LLM_TEMPERATURE")
	if tempStr == "" {
		return 0.8
	}
	temp, err := strconv.ParseFloat(tempStr, 32)
	if err != nil || temp < 0 {
		return 0.8
	}
	if temp > 2 {
		return 2 // both providers reject anything above 2
	}
	return float32(temp)
}

func getWikipediaTimeout() int {
	timeoutStr := os.Getenv("WIKIPEDIA_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 5
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 5
	}
	if timeout > 30 {
		return 30
	}
	return timeout
}
