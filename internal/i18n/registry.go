package i18n

import (
	"fmt"
	"sort"
	"strings"
)

// Registry resolves locale tags to catalogs. Built-in catalogs are always
// present; catalogs loaded from a directory override or extend them.
type Registry struct {
	catalogs map[string]*Catalog
}

// NewRegistry builds a registry from the built-in catalogs plus every catalog
// file in dir. An empty dir uses the built-ins only.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{catalogs: make(map[string]*Catalog)}
	for _, locale := range Locales() {
		c, err := Load(locale)
		if err != nil {
			return nil, err
		}
		r.catalogs[locale] = c
	}

	if dir == "" {
		return r, nil
	}
	extra, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for locale, c := range extra {
		r.catalogs[locale] = c
	}
	return r, nil
}

// Lookup returns the catalog for locale. Region and encoding suffixes are
// dropped when no exact match exists, so "en-US" and "es_MX.UTF-8" resolve
// to "en" and "es". An empty locale selects DefaultLocale.
func (r *Registry) Lookup(locale string) (*Catalog, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = DefaultLocale
	}
	if c, ok := r.catalogs[locale]; ok {
		return c, nil
	}

	base := strings.FieldsFunc(locale, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	if len(base) > 0 {
		if c, ok := r.catalogs[base[0]]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown locale %q (available: %s)", locale, strings.Join(r.Locales(), ", "))
}

// Locales lists the registered locales, sorted.
func (r *Registry) Locales() []string {
	locales := make([]string, 0, len(r.catalogs))
	for locale := range r.catalogs {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}
