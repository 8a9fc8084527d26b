package models

import (
	"testing"
)

func TestResolveKnownAlias(t *testing.T) {
	r := DefaultRegistry()

	if got := r.Resolve("llama-4-maverick"); got != "meta-llama/llama-4-maverick:free" {
		t.Fatalf("expected meta-llama/llama-4-maverick:free, got %s", got)
	}
	if got := r.Resolve("llama3-70b-8192"); got != "meta-llama/llama-3-70b-instruct" {
		t.Fatalf("expected meta-llama/llama-3-70b-instruct, got %s", got)
	}
}

func TestResolvePassesThroughUnknown(t *testing.T) {
	r := DefaultRegistry()

	for _, id := range []string{"openai/gpt-oss-120b:free", "llama3-8b", ""} {
		if got := r.Resolve(id); got != id {
			t.Fatalf("expected %q unchanged, got %q", id, got)
		}
	}
}

func TestMergeOverridesDefaults(t *testing.T) {
	r := DefaultRegistry()
	r.Merge(map[string]string{
		"llama-4-maverick": "meta-llama/llama-4-maverick",
		"qwen":             "qwen/qwen3-235b-a22b:free",
		"":                 "ignored",
		"blank":            "  ",
	})

	if got := r.Resolve("llama-4-maverick"); got != "meta-llama/llama-4-maverick" {
		t.Fatalf("override not applied, got %s", got)
	}
	if got := r.Resolve("qwen"); got != "qwen/qwen3-235b-a22b:free" {
		t.Fatalf("new alias not added, got %s", got)
	}
	if got := r.Resolve("blank"); got != "blank" {
		t.Fatalf("blank ids should be skipped, got %s", got)
	}
	if len(r.Aliases()) != 5 {
		t.Fatalf("expected 5 aliases, got %d", len(r.Aliases()))
	}
}

func TestAliasesSorted(t *testing.T) {
	aliases := DefaultRegistry().Aliases()

	if len(aliases) != 4 {
		t.Fatalf("expected 4 default aliases, got %d", len(aliases))
	}
	for i := 1; i < len(aliases); i++ {
		if aliases[i-1].Name > aliases[i].Name {
			t.Fatalf("aliases not sorted: %v", aliases)
		}
	}
	if aliases[0].Name != "deepseek-r1-0528" {
		t.Fatalf("expected deepseek-r1-0528 first, got %s", aliases[0].Name)
	}
}

func TestNewRegistryEmpty(t *testing.T) {
	r := NewRegistry(nil)
	if len(r.Aliases()) != 0 {
		t.Fatal("expected empty registry")
	}
	if got := r.Resolve("x"); got != "x" {
		t.Fatalf("expected passthrough, got %s", got)
	}
}
