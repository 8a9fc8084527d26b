package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lorenzotomasdiez/llm-debate/internal/chat"
	"github.com/lorenzotomasdiez/llm-debate/internal/llm"
)

// Mode selects how the Model Client reaches the provider.
type Mode string

const (
	// ModeProxy sends every call through the credential proxy.
	ModeProxy Mode = "proxy"
	// ModeDirect calls the provider with a rotating list of keys.
	ModeDirect Mode = "direct"
)

const (
	DefaultProxyURL  = "http://localhost:8888/api/proxy/openrouter"
	DefaultAddr      = ":8888"
	DefaultOutputDir = "output"
)

type Config struct {
	Mode        Mode
	ProxyURL    string
	Provider    chat.Provider
	KeysEnv     string
	APIKeys     []string
	Timeout     time.Duration
	Addr        string
	ProfilePath string
	OutputDir   string
}

// Load reads the configuration from the environment. Proxy secrets are not
// read here; the proxy looks them up on every request.
func Load() (*Config, error) {
	mode := Mode(strings.ToLower(envString("DEBATE_MODE", string(ModeProxy))))
	if mode != ModeProxy && mode != ModeDirect {
		return nil, fmt.Errorf("config: DEBATE_MODE must be %q or %q, got %q", ModeProxy, ModeDirect, mode)
	}

	providerName := os.Getenv("DEBATE_PROVIDER")
	provider, ok := chat.LookupProvider(providerName)
	if !ok {
		return nil, fmt.Errorf("config: unknown DEBATE_PROVIDER %q", providerName)
	}

	timeout, err := envDuration("DEBATE_TIMEOUT", llm.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("config: DEBATE_TIMEOUT must be positive, got %s", timeout)
	}

	keysEnv := provider.KeyEnv + "S"
	keys := llm.EnvKeys(keysEnv).Keys()
	if mode == ModeDirect && len(keys) == 0 {
		return nil, fmt.Errorf("config: %s is required in direct mode", keysEnv)
	}

	return &Config{
		Mode:        mode,
		ProxyURL:    envString("DEBATE_PROXY_URL", DefaultProxyURL),
		Provider:    provider,
		KeysEnv:     keysEnv,
		APIKeys:     keys,
		Timeout:     timeout,
		Addr:        envString("DEBATE_ADDR", DefaultAddr),
		ProfilePath: os.Getenv("DEBATE_PROFILE"),
		OutputDir:   envString("DEBATE_OUTPUT_DIR", DefaultOutputDir),
	}, nil
}

// LoadDotEnv loads variables from a .env file. A missing file is not an
// error, and variables already set in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, s, err)
	}
	return v, nil
}
