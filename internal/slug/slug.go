// Package slug generates URL-safe identifiers from free-text names and
// resolves collisions between them.
//
// Slugs are deterministic: the same input always yields the same slug, which
// keeps entity ids stable across pipeline re-runs. Slugs are NOT unique — two
// distinct names can normalize to the same slug — so callers register every
// candidate id with a Registry and let it append a disambiguating suffix.
package slug

import (
	"regexp"
	"strings"
)

// MaxLen is the default maximum slug length, used for crops and mandis.
// Districts use the shorter DistrictMaxLen.
const (
	MaxLen         = 50
	DistrictMaxLen = 20
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Make normalizes name into a slug of at most MaxLen characters.
func Make(name string) string {
	return MakeN(name, MaxLen)
}

// MakeN normalizes name into a slug of at most max characters: lower-cased,
// trimmed, stripped of everything outside word characters, whitespace and
// hyphens, with whitespace and hyphen runs collapsed to single hyphens.
// An input with no slug-safe characters yields "".
func MakeN(name string, max int) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > max {
		s = strings.TrimRight(s[:max], "-")
	}
	return s
}

// Registry tracks ids already assigned within one conversion run.
//
// The first caller to claim a candidate gets it bare; later claims of the
// same candidate get "candidate-suffix". Iteration order of the source data
// therefore decides who keeps the bare slug, so callers must feed records in
// their stable source order.
type Registry struct {
	seen       map[string]struct{}
	duplicates []string
}

// NewRegistry returns an empty id registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Claim registers candidate and returns the id to use. On collision the
// suffix is appended with a hyphen and the composite id is registered
// instead. An empty candidate counts as a collision outright and claims the
// bare suffix, so a name with no slug-safe characters never yields an empty
// id.
func (r *Registry) Claim(candidate, suffix string) string {
	id := candidate
	if _, taken := r.seen[id]; taken || id == "" {
		r.duplicates = append(r.duplicates, id)
		if id == "" {
			id = suffix
		} else {
			id = id + "-" + suffix
		}
	}
	r.seen[id] = struct{}{}
	return id
}

// Duplicates returns the candidates that needed disambiguation, in claim
// order.
func (r *Registry) Duplicates() []string {
	return r.duplicates
}
