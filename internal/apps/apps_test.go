package apps

import (
	"errors"
	"testing"
)

type failingSource struct{}

func (failingSource) Apps() (map[string]string, error) {
	return nil, errors.New("fichier illisible")
}

func TestBundle_KnownAlias(t *testing.T) {
	r := NewResolver(Static{"netflix": "com.netflix.Netflix"})

	if got := r.Bundle("netflix"); got != "com.netflix.Netflix" {
		t.Errorf("Bundle(netflix) = %q", got)
	}
	// Aliases are case-insensitive
	if got := r.Bundle("Netflix"); got != "com.netflix.Netflix" {
		t.Errorf("Bundle(Netflix) = %q", got)
	}
}

func TestBundle_UnknownNamePassesThrough(t *testing.T) {
	r := NewResolver(Static{})

	if got := r.Bundle("com.example.app"); got != "com.example.app" {
		t.Errorf("Bundle(com.example.app) = %q", got)
	}
}

func TestBundle_FallsBackToDefaultsOnSourceError(t *testing.T) {
	r := NewResolver(failingSource{})

	if got := r.Bundle("youtube"); got != Defaults["youtube"] {
		t.Errorf("Bundle(youtube) = %q, want default %q", got, Defaults["youtube"])
	}
}
