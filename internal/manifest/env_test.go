package manifest

import (
	"fmt"
	"testing"

	"github.com/piraterna/piratpkg/internal/errors"
)

func TestEnvironment(t *testing.T) {
	var env Environment
	if err := env.Add("A", "1"); err != nil {
		t.Fatal(err)
	}
	if err := env.Add("A", "2=3"); err != nil {
		t.Fatal(err)
	}

	if v, ok := env.Lookup("A"); !ok || v != "2=3" {
		t.Errorf("Lookup(A) = %q, %v; want %q, true", v, ok, "2=3")
	}
	if _, ok := env.Lookup("B"); ok {
		t.Error("Lookup(B) should fail")
	}

	entries := env.Entries()
	entries[0] = "mutated"
	if env.Entries()[0] != "A=1" {
		t.Error("Entries() should return a copy")
	}
}

func TestEnvironment_Bound(t *testing.T) {
	var env Environment
	for i := 0; i < MaxEnvEntries; i++ {
		if err := env.Add(fmt.Sprintf("K%d", i), "v"); err != nil {
			t.Fatalf("Add #%d error: %v", i+1, err)
		}
	}

	err := env.Add("ONE_TOO_MANY", "v")
	if !errors.Is(err, errors.ErrTooManyEnvVars) {
		t.Fatalf("Add #%d = %v, want ErrTooManyEnvVars", MaxEnvEntries+1, err)
	}
	if env.Len() != MaxEnvEntries {
		t.Errorf("Len() = %d, want %d", env.Len(), MaxEnvEntries)
	}
}
