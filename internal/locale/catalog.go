// Package locale holds the translated string tables and picks which one a
// user sees.
package locale

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Locale is a supported BCP 47 locale identifier.
type Locale string

const (
	EnUS Locale = "en-US"
	PtBR Locale = "pt-BR"
)

// Fallback is used when neither a stored nor a platform locale matches.
const Fallback = EnUS

// StorageKey is the preference key under which clients persist the chosen locale.
const StorageKey = "portfolio-locale"

//go:embed locales/*.yaml
var tablesFS embed.FS

var supported = []Locale{EnUS, PtBR}

// Catalog resolves string tables by locale. It is built once and passed
// explicitly to whatever needs translated text.
type Catalog struct {
	tables  map[Locale]*Messages
	matcher language.Matcher
}

// Load parses the embedded tables for every supported locale.
func Load() (*Catalog, error) {
	tags := make([]language.Tag, 0, len(supported))
	tables := make(map[Locale]*Messages, len(supported))

	for _, loc := range supported {
		data, err := tablesFS.ReadFile(path.Join("locales", string(loc)+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", loc, err)
		}
		var msgs Messages
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", loc, err)
		}
		if len(msgs.Contact.ContactMethods) == 0 || len(msgs.Contact.Subjects) == 0 {
			return nil, fmt.Errorf("locale %s: contact methods and subjects are required", loc)
		}
		tables[loc] = &msgs
		tags = append(tags, language.MustParse(string(loc)))
	}

	return &Catalog{tables: tables, matcher: language.NewMatcher(tags)}, nil
}

// MustLoad is Load for program start-up, where a broken embed is fatal.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Supported lists the available locales in preference order.
func (c *Catalog) Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Messages returns the table for loc, falling back to the default locale.
func (c *Catalog) Messages(loc Locale) *Messages {
	if msgs, ok := c.tables[loc]; ok {
		return msgs
	}
	return c.tables[Fallback]
}

// Parse returns the supported locale equal to raw (case-insensitive).
func (c *Catalog) Parse(raw string) (Locale, bool) {
	raw = strings.TrimSpace(raw)
	for _, loc := range supported {
		if strings.EqualFold(raw, string(loc)) {
			return loc, true
		}
	}
	return "", false
}

// Match maps an arbitrary platform locale (e.g. "pt_PT.UTF-8", "en-GB") to
// the closest supported locale. Unrelated languages yield Fallback.
func (c *Catalog) Match(platform string) Locale {
	cleaned := normalizePlatformLocale(platform)
	if cleaned == "" {
		return Fallback
	}
	tag, err := language.Parse(cleaned)
	if err != nil {
		return Fallback
	}
	_, index, confidence := c.matcher.Match(tag)
	if confidence == language.No {
		return Fallback
	}
	return supported[index]
}

// Detect picks the active locale: a valid stored preference wins, then the
// platform locale, then Fallback.
func (c *Catalog) Detect(stored, platform string) Locale {
	if loc, ok := c.Parse(stored); ok {
		return loc
	}
	return c.Match(platform)
}

func normalizePlatformLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")
	if raw == "C" || raw == "POSIX" {
		return ""
	}
	return raw
}
