package manifest

import (
	"strings"

	"github.com/piraterna/piratpkg/internal/errors"
)

// MaxEnvEntries bounds the environment handed to the sandbox, injected
// variables included.
const MaxEnvEntries = 256

// Environment is an ordered, bounded list of KEY=VALUE entries.
type Environment struct {
	entries []string
}

// Add appends KEY=VALUE. It fails once MaxEnvEntries entries are present.
func (e *Environment) Add(key, value string) error {
	if len(e.entries) >= MaxEnvEntries {
		return errors.TooManyEnvVars(MaxEnvEntries)
	}
	e.entries = append(e.entries, key+"="+value)
	return nil
}

// Len returns the number of entries.
func (e *Environment) Len() int {
	return len(e.entries)
}

// Entries returns a copy of the entries in insertion order.
func (e *Environment) Entries() []string {
	out := make([]string, len(e.entries))
	copy(out, e.entries)
	return out
}

// Lookup returns the value of the last entry for key.
func (e *Environment) Lookup(key string) (string, bool) {
	prefix := key + "="
	for i := len(e.entries) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(e.entries[i], prefix); ok {
			return v, true
		}
	}
	return "", false
}
