package llm

import (
	"os"
	"strings"
)

// CredentialSource yields the ordered list of upstream keys tried by DirectClient.
type CredentialSource interface {
	Keys() []string
}

// StaticKeys is a fixed, in-memory key list.
type StaticKeys []string

func (s StaticKeys) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, k := range s {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// EnvKeys reads a comma-separated key list from an environment variable on
// every call, so rotated secrets are picked up without a restart.
type EnvKeys string

func (e EnvKeys) Keys() []string {
	return StaticKeys(strings.Split(os.Getenv(string(e)), ",")).Keys()
}
