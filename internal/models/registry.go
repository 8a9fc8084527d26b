package models

import (
	"sort"
	"strings"
)

// Alias is one short name and the provider model id it stands for.
type Alias struct {
	Name    string `json:"name" yaml:"name"`
	ModelID string `json:"model_id" yaml:"model_id"`
}

// Registry maps short model names to provider model ids.
// Unknown names pass through unchanged.
type Registry struct {
	aliases map[string]string
}

// NewRegistry creates a registry from name -> model id pairs. Blank names or
// ids are skipped.
func NewRegistry(aliases map[string]string) *Registry {
	r := &Registry{aliases: make(map[string]string, len(aliases))}
	r.Merge(aliases)
	return r
}

// DefaultRegistry returns a registry seeded with DefaultAliases.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultAliases())
}

// Merge adds or overrides entries.
func (r *Registry) Merge(aliases map[string]string) {
	for name, id := range aliases {
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if name == "" || id == "" {
			continue
		}
		r.aliases[name] = id
	}
}

// Resolve returns the provider id for model, or model itself when it is not
// an alias.
func (r *Registry) Resolve(model string) string {
	if id, ok := r.aliases[model]; ok {
		return id
	}
	return model
}

// Aliases returns every entry sorted by name.
func (r *Registry) Aliases() []Alias {
	out := make([]Alias, 0, len(r.aliases))
	for name, id := range r.aliases {
		out = append(out, Alias{Name: name, ModelID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultAliases returns the built-in short names for OpenRouter models.
func DefaultAliases() map[string]string {
	return map[string]string{
		"llama-4-maverick": "meta-llama/llama-4-maverick:free",
		"deepseek-r1-0528": "deepseek/deepseek-r1-0528:free",
		"llama3-70b-8192":  "meta-llama/llama-3-70b-instruct",
		"llama3-8b-4096":   "meta-llama/llama-3-8b-instruct:free",
	}
}
