// Package theme is the catalog of named color palettes a seller page can be
// rendered with.
//
// Applying a theme never mutates shared state: it produces a Context that the
// caller hands to whatever renders the page, and records the chosen key in a
// PreferenceStore owned by the caller (a cookie for HTTP clients).
package theme

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FallbackKey = "coral"
	PrimaryVar  = "--primary-color"
	// StorageKey names the persisted preference.
	StorageKey = "bookalink-theme"
)

//go:embed themes.yaml
var themesYAML []byte

type Theme struct {
	Key    string            `yaml:"key" json:"key"`
	Name   string            `yaml:"name" json:"name"`
	Emoji  string            `yaml:"emoji" json:"emoji"`
	Colors map[string]string `yaml:"colors" json:"colors"`
}

func (t Theme) Primary() string {
	return t.Colors[PrimaryVar]
}

// Context is an applied theme: the key plus the style variables to set.
type Context struct {
	Key  string            `json:"key"`
	Name string            `json:"name"`
	Vars map[string]string `json:"vars"`
}

// PreferenceStore persists the last applied theme key.
type PreferenceStore interface {
	Get() (string, bool)
	Set(key string)
}

type Registry struct {
	themes []Theme
	index  map[string]int
}

// Load parses a palette document.
func Load(data []byte) (*Registry, error) {
	var doc struct {
		Themes []Theme `yaml:"themes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}

	r := &Registry{
		themes: doc.Themes,
		index:  make(map[string]int, len(doc.Themes)),
	}
	for i, t := range doc.Themes {
		if t.Key == "" {
			return nil, fmt.Errorf("theme %d has no key", i)
		}
		if _, dup := r.index[t.Key]; dup {
			return nil, fmt.Errorf("duplicate theme key %q", t.Key)
		}
		if t.Primary() == "" {
			return nil, fmt.Errorf("theme %q has no %s", t.Key, PrimaryVar)
		}
		r.index[t.Key] = i
	}
	if _, ok := r.index[FallbackKey]; !ok {
		return nil, fmt.Errorf("fallback theme %q missing", FallbackKey)
	}

	return r, nil
}

// Default returns the registry built from the embedded palettes.
func Default() *Registry {
	r, err := Load(themesYAML)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns the palettes in display order.
func (r *Registry) List() []Theme {
	out := make([]Theme, len(r.themes))
	copy(out, r.themes)
	return out
}

func (r *Registry) Lookup(key string) (Theme, bool) {
	i, ok := r.index[key]
	if !ok {
		return Theme{}, false
	}
	return r.themes[i], true
}

func (r *Registry) PrimaryColor(key string) (string, bool) {
	t, ok := r.Lookup(key)
	if !ok {
		return "", false
	}
	return t.Primary(), true
}

// Apply resolves key and records it in store. Unknown keys are a no-op and
// report false. A nil store skips persistence.
func (r *Registry) Apply(store PreferenceStore, key string) (Context, bool) {
	t, ok := r.Lookup(key)
	if !ok {
		return Context{}, false
	}

	if store != nil {
		store.Set(key)
	}
	return newContext(t), true
}

// Stored returns the persisted key, or FallbackKey when nothing is stored.
func (r *Registry) Stored(store PreferenceStore) string {
	if store == nil {
		return FallbackKey
	}
	if key, ok := store.Get(); ok && key != "" {
		return key
	}
	return FallbackKey
}

// Saved applies the persisted theme, falling back when it no longer exists.
func (r *Registry) Saved(store PreferenceStore) Context {
	if ctx, ok := r.Apply(store, r.Stored(store)); ok {
		return ctx
	}
	ctx, _ := r.Apply(store, FallbackKey)
	return ctx
}

// KeyFromColor finds the first palette, in display order, whose primary color
// equals color ignoring case. Palettes sharing a primary color are therefore
// indistinguishable here.
func (r *Registry) KeyFromColor(color string) string {
	if color == "" {
		return FallbackKey
	}
	for _, t := range r.themes {
		if strings.EqualFold(t.Primary(), color) {
			return t.Key
		}
	}
	return FallbackKey
}

// ForSeller applies the theme stored on a seller row, or the persisted
// preference when the seller has none.
func (r *Registry) ForSeller(store PreferenceStore, color string) Context {
	if color == "" {
		return r.Saved(store)
	}
	ctx, _ := r.Apply(store, r.KeyFromColor(color))
	return ctx
}

func newContext(t Theme) Context {
	vars := make(map[string]string, len(t.Colors))
	for k, v := range t.Colors {
		vars[k] = v
	}
	return Context{Key: t.Key, Name: t.Name, Vars: vars}
}

// MemoryStore is a PreferenceStore held in memory.
type MemoryStore struct {
	key string
}

func (m *MemoryStore) Get() (string, bool) {
	return m.key, m.key != ""
}

func (m *MemoryStore) Set(key string) {
	m.key = key
}
