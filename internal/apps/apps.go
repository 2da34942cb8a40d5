// Package apps resolves application aliases to bundle identifiers.
package apps

import "strings"

// Defaults is the alias table bootstrapped into apps.json on first use.
var Defaults = map[string]string{
	"netflix":  "com.netflix.Netflix",
	"youtube":  "com.google.ios.youtube",
	"disney":   "com.disney.disneyplus",
	"prime":    "com.amazon.aiv.AIVApp",
	"apple_tv": "com.apple.TVWatchList",
	"spotify":  "com.spotify.client",
	"twitch":   "tv.twitch",
	"plex":     "com.plexapp.plex",
	"infuse":   "com.firecore.infuse",
	"arte":     "tv.arte.plus7",
	"molotov":  "com.molotov.ios",
	"mycanal":  "com.canal.canalplus",
}

// Source provides the persisted alias configuration.
type Source interface {
	Apps() (map[string]string, error)
}

// Resolver turns aliases into bundle identifiers.
type Resolver struct {
	source Source
}

// NewResolver builds a resolver over the persisted alias table.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Bundle returns the bundle identifier for an alias. Unknown names are
// returned as-is: they are assumed to already be bundle identifiers.
func (r *Resolver) Bundle(name string) string {
	config, err := r.source.Apps()
	if err != nil || config == nil {
		config = Defaults
	}
	if id, ok := config[strings.ToLower(name)]; ok {
		return id
	}
	return name
}

// Static is a Source over a fixed in-memory table, used by tests and by the
// resolver fallback path.
type Static map[string]string

// Apps implements Source.
func (s Static) Apps() (map[string]string, error) { return s, nil }
