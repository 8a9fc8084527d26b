package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DEBATE_MODE",
		"DEBATE_PROXY_URL",
		"DEBATE_PROVIDER",
		"DEBATE_TIMEOUT",
		"DEBATE_ADDR",
		"DEBATE_PROFILE",
		"DEBATE_OUTPUT_DIR",
		"OPENROUTER_API_KEYS",
		"GROQ_API_KEYS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != ModeProxy {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeProxy)
	}
	if cfg.ProxyURL != DefaultProxyURL {
		t.Errorf("ProxyURL = %q, want %q", cfg.ProxyURL, DefaultProxyURL)
	}
	if cfg.Provider.Name != "OpenRouter" {
		t.Errorf("Provider = %q, want OpenRouter", cfg.Provider.Name)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s, want 45s", cfg.Timeout)
	}
	if cfg.Addr != ":8888" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8888")
	}
	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "output")
	}
	if cfg.KeysEnv != "OPENROUTER_API_KEYS" {
		t.Errorf("KeysEnv = %q", cfg.KeysEnv)
	}
}

func TestLoad_CustomEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBATE_MODE", "DIRECT")
	t.Setenv("DEBATE_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEYS", "k1, k2,,")
	t.Setenv("DEBATE_TIMEOUT", "10s")
	t.Setenv("DEBATE_ADDR", "127.0.0.1:9000")
	t.Setenv("DEBATE_PROFILE", "debate.yaml")
	t.Setenv("DEBATE_OUTPUT_DIR", "results")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mode != ModeDirect {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeDirect)
	}
	if cfg.Provider.Name != "Groq" {
		t.Errorf("Provider = %q, want Groq", cfg.Provider.Name)
	}
	if len(cfg.APIKeys) != 2 || cfg.APIKeys[0] != "k1" || cfg.APIKeys[1] != "k2" {
		t.Errorf("APIKeys = %v, want [k1 k2]", cfg.APIKeys)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %s, want 10s", cfg.Timeout)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.ProfilePath != "debate.yaml" || cfg.OutputDir != "results" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_DirectModeRequiresKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBATE_MODE", "direct")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when OPENROUTER_API_KEYS is missing in direct mode")
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBATE_MODE", "carrier-pigeon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoad_InvalidProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBATE_PROVIDER", "nowhere")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "0s", "-5s"} {
		clearEnv(t)
		t.Setenv("DEBATE_TIMEOUT", v)

		if _, err := Load(); err == nil {
			t.Errorf("expected error for DEBATE_TIMEOUT=%q", v)
		}
	}
}

func TestLoadDotEnv_SetsVarsFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	os.WriteFile(envFile, []byte("# local settings\nDEBATE_OUTPUT_DIR=dotenv-output\nDEBATE_TIMEOUT=\"20s\"\n"), 0644)

	err := LoadDotEnv(envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "dotenv-output" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "dotenv-output")
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %s, want 20s", cfg.Timeout)
	}
}

func TestLoadDotEnv_EnvVarsTakePrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBATE_OUTPUT_DIR", "from-env")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	os.WriteFile(envFile, []byte("DEBATE_OUTPUT_DIR=from-dotenv\n"), 0644)

	err := LoadDotEnv(envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, want %q (env var should take precedence)", cfg.OutputDir, "from-env")
	}
}

func TestLoadDotEnv_MissingFileIsNotError(t *testing.T) {
	err := LoadDotEnv("/nonexistent/.env")
	if err != nil {
		t.Fatalf("missing .env file should not be an error, got: %v", err)
	}
}
