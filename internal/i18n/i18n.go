// Package i18n holds the message catalogs used for parser diagnostics and the
// localized display names of token types.
//
// Catalogs are TOML or YAML documents with a `locale` key, a `messages` table
// of text/template strings and a `tokens` table keyed by token type name.
// The built-in catalogs are "es" (default) and "en". A catalog falls back to
// the default catalog for keys it does not define.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// DefaultLocale is the locale used when none is requested.
const DefaultLocale = "es"

// Message keys
const (
	MsgExpectedToken   = "expected_token"
	MsgNoPrefixParseFn = "no_prefix_parse_fn"
	MsgIntegerParse    = "integer_parse"
	MsgDidYouMean      = "did_you_mean"
)

//go:embed locales/*.toml
var embedded embed.FS

// Args carries the values interpolated into a message template.
type Args map[string]any

// catalogFile is the on-disk layout of a catalog
type catalogFile struct {
	Locale   string            `toml:"locale" yaml:"locale"`
	Messages map[string]string `toml:"messages" yaml:"messages"`
	Tokens   map[string]string `toml:"tokens" yaml:"tokens"`
}

// Catalog is an immutable set of translations. It is safe for concurrent use.
type Catalog struct {
	locale    string
	templates map[string]*template.Template
	tokens    map[string]string
	fallback  *Catalog
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog for DefaultLocale.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := loadEmbedded(DefaultLocale, nil)
		if err != nil {
			panic(fmt.Sprintf("i18n: built-in %q catalog is broken: %v", DefaultLocale, err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load returns the built-in catalog for locale.
func Load(locale string) (*Catalog, error) {
	if locale == "" || locale == DefaultLocale {
		return Default(), nil
	}
	return loadEmbedded(locale, Default())
}

// Locales lists the built-in locales, sorted.
func Locales() []string {
	entries, err := embedded.ReadDir("locales")
	if err != nil {
		return []string{DefaultLocale}
	}
	locales := make([]string, 0, len(entries))
	for _, e := range entries {
		locales = append(locales, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(locales)
	return locales
}

// LoadFile reads a catalog from a .toml, .yaml or .yml file. Keys missing from
// the file are served by the built-in catalog for the same locale, or by the
// default catalog when the locale is not built in.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if file.Locale == "" {
		file.Locale = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	fallback, err := Load(file.Locale)
	if err != nil {
		fallback = Default()
	}
	return newCatalog(file, fallback)
}

// LoadDir loads every catalog file in dir, keyed by locale.
func LoadDir(dir string) (map[string]*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	catalogs := make(map[string]*Catalog)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".toml", ".yaml", ".yml":
		default:
			continue
		}
		c, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		catalogs[c.Locale()] = c
	}
	return catalogs, nil
}

func loadEmbedded(locale string, fallback *Catalog) (*Catalog, error) {
	data, err := embedded.ReadFile("locales/" + locale + ".toml")
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q", locale)
	}
	var file catalogFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s catalog: %w", locale, err)
	}
	return newCatalog(file, fallback)
}

func newCatalog(file catalogFile, fallback *Catalog) (*Catalog, error) {
	for name := range file.Tokens {
		if _, ok := lexer.LookupTokenType(name); !ok {
			return nil, fmt.Errorf("catalog %q names unknown token type %q", file.Locale, name)
		}
	}

	c := &Catalog{
		locale:    file.Locale,
		templates: make(map[string]*template.Template, len(file.Messages)),
		tokens:    file.Tokens,
		fallback:  fallback,
	}
	for key, text := range file.Messages {
		tmpl, err := template.New(key).Option("missingkey=zero").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", key, err)
		}
		c.templates[key] = tmpl
	}
	return c, nil
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Message renders the message stored under key. Unknown keys render as the
// key itself.
func (c *Catalog) Message(key string, args Args) string {
	for cat := c; cat != nil; cat = cat.fallback {
		tmpl, ok := cat.templates[key]
		if !ok {
			continue
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, args); err != nil {
			return key
		}
		return buf.String()
	}
	return key
}

// TokenName returns the localized display name of a token type.
func (c *Catalog) TokenName(tt lexer.TokenType) string {
	name := tt.String()
	for cat := c; cat != nil; cat = cat.fallback {
		if display, ok := cat.tokens[name]; ok {
			return display
		}
	}
	return name
}
