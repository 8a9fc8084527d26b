package main

import (
	"fmt"
	"os"

	"github.com/lorenzotomasdiez/llm-debate/internal/chat"
	"github.com/lorenzotomasdiez/llm-debate/internal/config"
	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"github.com/lorenzotomasdiez/llm-debate/internal/debate/verdict"
	"github.com/lorenzotomasdiez/llm-debate/internal/llm"
	"github.com/lorenzotomasdiez/llm-debate/internal/models"
	"github.com/lorenzotomasdiez/llm-debate/internal/proxy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// flagEnv maps persistent flags to the environment variables they override.
var flagEnv = map[string]string{
	"mode":       "DEBATE_MODE",
	"proxy-url":  "DEBATE_PROXY_URL",
	"provider":   "DEBATE_PROVIDER",
	"timeout":    "DEBATE_TIMEOUT",
	"profile":    "DEBATE_PROFILE",
	"output-dir": "DEBATE_OUTPUT_DIR",
}

// app is everything a command needs, built once from flags and environment.
type app struct {
	cfg     *config.Config
	file    *config.ProfileFile
	profile *debate.Profile
	aliases *models.Registry
	log     *logrus.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Root().PersistentFlags()

	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	for name, key := range flagEnv {
		if flags.Changed(name) {
			os.Setenv(key, flags.Lookup(name).Value.String())
		}
	}

	level, _ := flags.GetString("log-level")
	log, err := newLogger(level)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	file, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	profile, err := file.Build()
	if err != nil {
		return nil, err
	}

	aliases := models.DefaultRegistry()
	aliases.Merge(file.Aliases)

	return &app{cfg: cfg, file: file, profile: profile, aliases: aliases, log: log}, nil
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

// client returns the Model Client for the configured mode.
func (a *app) client() debate.LLMClient {
	if a.cfg.Mode == config.ModeDirect {
		a.log.WithFields(logrus.Fields{
			"provider": a.cfg.Provider.Name,
			"keys":     len(a.cfg.APIKeys),
		}).Info("calling the provider directly")
		return llm.NewDirectClient(a.cfg.Provider, llm.EnvKeys(a.cfg.KeysEnv), a.cfg.Timeout, a.log)
	}
	a.log.WithField("url", a.cfg.ProxyURL).Info("calling the provider through the proxy")
	return llm.NewProxyClient(a.cfg.ProxyURL, a.cfg.Timeout, a.log)
}

func (a *app) engine() *debate.Engine {
	client := a.client()
	e := debate.NewEngine(client, verdict.NewJudge(client, a.profile), a.profile, a.aliases)
	e.SetLogger(a.log)
	return e
}

// proxies builds one credential proxy per known provider.
func (a *app) proxies() map[string]*proxy.Handler {
	opts := proxy.Options{Timeout: a.cfg.Timeout, Log: a.log}
	orOpts := opts
	orOpts.Referer = a.file.OpenRouter.Referer
	orOpts.Title = a.file.OpenRouter.Title
	return map[string]*proxy.Handler{
		"groq":       proxy.New(chat.Groq, opts),
		"openrouter": proxy.New(chat.OpenRouter, orOpts),
	}
}
