// Package i18n holds the client's embedded string tables and the lookup
// rules over them: dotted keys, a per-language table, fallback to the
// default language, and finally to the key itself. Translation misses are
// never errors.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/habitek/propmobile/internal/core/domain"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle is an immutable set of flattened string tables, one per supported
// language. Safe for concurrent use once constructed.
type Bundle struct {
	tables map[domain.Language]map[string]string
}

// Load parses the embedded locale files into a Bundle. It fails only on a
// build-time problem (missing or malformed table), so callers treat an error
// as fatal at startup.
func Load() (*Bundle, error) {
	b := &Bundle{tables: make(map[domain.Language]map[string]string)}
	for _, lang := range domain.SupportedLanguages() {
		raw, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", lang))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		flat := make(map[string]string)
		flatten("", nested, flat)
		b.tables[lang] = flat
	}
	return b, nil
}

// flatten turns {"auth": {"login": "Log in"}} into {"auth.login": "Log in"}.
func flatten(prefix string, nested map[string]any, out map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// Lookup resolves key in lang's table, then the default language's table.
// The returned bool reports whether any table had the key.
func (b *Bundle) Lookup(lang domain.Language, key string) (string, bool) {
	if t, ok := b.tables[lang]; ok {
		if v, ok := t[key]; ok {
			return v, true
		}
	}
	if lang != domain.DefaultLanguage {
		if v, ok := b.tables[domain.DefaultLanguage][key]; ok {
			return v, true
		}
	}
	return "", false
}

// Interpolate substitutes {{name}} placeholders from args. Unknown
// placeholders are left as-is.
func Interpolate(msg string, args map[string]any) string {
	if len(args) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	for name, val := range args {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", fmt.Sprint(val))
	}
	return msg
}

// matcher prefers languages in SupportedLanguages order, so English wins for
// locales we do not ship (the confidence for those comes back language.No).
var matcher = language.NewMatcher(func() []language.Tag {
	tags := make([]language.Tag, 0, len(domain.SupportedLanguages()))
	for _, l := range domain.SupportedLanguages() {
		tags = append(tags, language.Make(string(l)))
	}
	return tags
}())

// MatchDeviceLocale maps a raw device locale (BCP-47 like "es-MX", or a
// POSIX value like "es_MX.UTF-8") onto a supported language. Unparseable or
// unsupported locales resolve to the default language.
func MatchDeviceLocale(raw string) domain.Language {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DefaultLanguage
	}
	// Strip POSIX encoding/modifier suffixes ("es_MX.UTF-8@latin").
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")

	tag, err := language.Parse(raw)
	if err != nil {
		return domain.DefaultLanguage
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return domain.DefaultLanguage
	}
	return domain.SupportedLanguages()[idx]
}
