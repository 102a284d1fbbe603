package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

type ClientMode string

const (
	ClientModeProxy  ClientMode = "proxy"
	ClientModeDirect ClientMode = "direct"
)

type Config struct {
	Server ServerConfig
	Client ClientConfig
	App    AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	ProjectID      string
	Location       string
	Model          string
	UseSDK         bool
	// MaxBodyBytes caps the JSON body of /api/generate-image.
	MaxBodyBytes    int64
	SafetyThreshold valueobjects.SafetyThreshold
}

type ClientConfig struct {
	Mode            ClientMode
	APIEndpoint     string
	APIKey          string
	BaseURL         string
	DirectModel     string
	ImagePickPolicy valueobjects.ImagePickPolicy
	SafetyThreshold valueobjects.SafetyThreshold
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

// Load reads .env when present, then the process environment. Values that
// fail to parse are reported; missing required values are left to Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	threshold, err := valueobjects.ParseSafetyThreshold(getEnv("SAFETY_THRESHOLD", string(valueobjects.ThresholdBlockMediumAndAbove)))
	if err != nil {
		return nil, fmt.Errorf("SAFETY_THRESHOLD: %w", err)
	}

	policy, err := valueobjects.ParseImagePickPolicy(getEnv("IMAGE_PICK_POLICY", string(valueobjects.PickLastImage)))
	if err != nil {
		return nil, fmt.Errorf("IMAGE_PICK_POLICY: %w", err)
	}

	useSDK, err := getEnvAsBool("USE_SDK", false)
	if err != nil {
		return nil, err
	}

	mode := ClientMode(strings.ToLower(getEnv("CLIENT_MODE", string(ClientModeProxy))))
	if mode != ClientModeProxy && mode != ClientModeDirect {
		return nil, fmt.Errorf("CLIENT_MODE must be %q or %q, got %q", ClientModeProxy, ClientModeDirect, mode)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3001"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			ProjectID:       getEnvFirst([]string{"GOOGLE_CLOUD_PROJECT", "PROJECT_ID"}, ""),
			Location:        getEnvFirst([]string{"GOOGLE_CLOUD_LOCATION", "LOCATION"}, "us-central1"),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
			UseSDK:          useSDK,
			MaxBodyBytes:    valueobjects.MaxUploadSize,
			SafetyThreshold: threshold,
		},
		Client: ClientConfig{
			Mode:            mode,
			APIEndpoint:     getEnv("API_ENDPOINT", "http://localhost:3001/api/generate-image"),
			APIKey:          getEnv("GOOGLE_CLOUD_API_KEY", ""),
			BaseURL:         getEnv("GENAI_BASE_URL", ""),
			DirectModel:     getEnv("DIRECT_MODEL", "gemini-3-pro-image-preview"),
			ImagePickPolicy: policy,
			SafetyThreshold: threshold,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate checks what the proxy server needs to start.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.ProjectID == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT (or PROJECT_ID) is required")
	}

	if c.Location == "" {
		return fmt.Errorf("GOOGLE_CLOUD_LOCATION is required")
	}

	return nil
}

// Validate checks what the selected client variant needs.
func (c *ClientConfig) Validate() error {
	switch c.Mode {
	case ClientModeProxy:
		if c.APIEndpoint == "" {
			return fmt.Errorf("API_ENDPOINT is required in proxy mode")
		}
	case ClientModeDirect:
		if c.APIKey == "" {
			return fmt.Errorf("GOOGLE_CLOUD_API_KEY is required in direct mode")
		}
	default:
		return fmt.Errorf("unknown CLIENT_MODE %q", c.Mode)
	}
	return nil
}

func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFirst returns the first non-empty value among keys.
func getEnvFirst(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, value)
	}
	return b, nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
