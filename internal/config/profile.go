package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the optional YAML debate profile.
//
//	profile: extended
//	language: bn
//	quote: previous-phase
//	aliases:
//	  maverick: meta-llama/llama-4-maverick:free
//	openrouter:
//	  referer: https://debate.example.org
//	  title: AI Debate
type ProfileFile struct {
	Profile    string            `yaml:"profile"`
	Phases     []string          `yaml:"phases"`
	Language   string            `yaml:"language"`
	Quote      string            `yaml:"quote"`
	Aliases    map[string]string `yaml:"aliases"`
	OpenRouter OpenRouterConfig  `yaml:"openrouter"`

	// Prompts overrides individual fields of the language's prompt set.
	Prompts yaml.Node `yaml:"prompts"`
}

// OpenRouterConfig holds the attribution headers the proxy sends upstream.
type OpenRouterConfig struct {
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`
}

// LoadProfile reads a YAML profile from path. An empty path yields the
// default profile.
func LoadProfile(path string) (*ProfileFile, error) {
	if path == "" {
		return ParseProfile(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseProfile(data)
}

// ParseProfile unmarshals YAML bytes into a validated ProfileFile.
func ParseProfile(data []byte) (*ProfileFile, error) {
	var pf ProfileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("config: parse profile: %w", err)
	}
	pf.applyDefaults()
	if err := pf.validate(); err != nil {
		return nil, err
	}
	return &pf, nil
}

func (p *ProfileFile) applyDefaults() {
	if p.Profile == "" {
		p.Profile = "extended"
	}
	if p.Language == "" {
		p.Language = "en"
	}
	if p.Quote == "" {
		p.Quote = string(debate.QuoteLatest)
	}
}

func (p *ProfileFile) validate() error {
	var errs []string
	if p.Profile != "classic" && p.Profile != "extended" {
		errs = append(errs, fmt.Sprintf("profile must be classic or extended, got %q", p.Profile))
	}
	if _, ok := debate.LookupPrompts(p.Language); !ok {
		errs = append(errs, fmt.Sprintf("unknown language %q", p.Language))
	}
	switch debate.QuoteScope(p.Quote) {
	case debate.QuoteLatest, debate.QuotePreviousPhase:
	default:
		errs = append(errs, fmt.Sprintf("quote must be %s or %s, got %q", debate.QuoteLatest, debate.QuotePreviousPhase, p.Quote))
	}
	for i, name := range p.Phases {
		if _, err := debate.ParsePhase(name); err != nil {
			errs = append(errs, fmt.Sprintf("phases[%d]: unknown phase %q", i, name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Build compiles the debate profile. An explicit phase list replaces the
// named profile's phases.
func (p *ProfileFile) Build() (*debate.Profile, error) {
	prompts, ok := debate.LookupPrompts(p.Language)
	if !ok {
		return nil, fmt.Errorf("config: unknown language %q", p.Language)
	}
	if !p.Prompts.IsZero() {
		if err := p.Prompts.Decode(&prompts); err != nil {
			return nil, fmt.Errorf("config: prompts: %w", err)
		}
	}

	phases := debate.ExtendedPhases
	if p.Profile == "classic" {
		phases = debate.ClassicPhases
	}
	if len(p.Phases) > 0 {
		phases = make([]debate.Phase, 0, len(p.Phases))
		for _, name := range p.Phases {
			ph, err := debate.ParsePhase(name)
			if err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			phases = append(phases, ph)
		}
	}

	profile, err := debate.NewProfile(p.Profile, phases, debate.QuoteScope(p.Quote), prompts)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return profile, nil
}
