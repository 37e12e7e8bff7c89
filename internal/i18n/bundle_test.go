package i18n

import (
	"testing"

	"github.com/habitek/propmobile/internal/core/domain"
)

func TestLoad_AllSupportedLanguages(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, lang := range domain.SupportedLanguages() {
		if v, ok := b.Lookup(lang, "common.appName"); !ok || v == "" {
			t.Fatalf("%s: common.appName missing", lang)
		}
	}
}

func TestLookup_DottedKeysAndFallback(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if v, ok := b.Lookup(domain.LangSpanish, "nav.payments"); !ok || v != "Pagos" {
		t.Fatalf("expected Pagos, got %q (ok=%v)", v, ok)
	}
	// English-only key resolves from the default table under es.
	if v, ok := b.Lookup(domain.LangSpanish, "common.retry"); !ok || v != "Retry" {
		t.Fatalf("expected fallback Retry, got %q (ok=%v)", v, ok)
	}
	if _, ok := b.Lookup(domain.LangSpanish, "nav"); ok {
		t.Fatalf("non-leaf key should not resolve")
	}
	if _, ok := b.Lookup(domain.LangEnglish, "missing.key"); ok {
		t.Fatalf("unknown key should not resolve")
	}
}

func TestInterpolate(t *testing.T) {
	cases := []struct {
		msg  string
		args map[string]any
		want string
	}{
		{"Welcome, {{name}}", map[string]any{"name": "Ana"}, "Welcome, Ana"},
		{"{{n}} items", map[string]any{"n": 3}, "3 items"},
		{"no placeholders", map[string]any{"name": "Ana"}, "no placeholders"},
		{"keep {{unknown}}", map[string]any{"name": "Ana"}, "keep {{unknown}}"},
		{"Welcome, {{name}}", nil, "Welcome, {{name}}"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.msg, tc.args); got != tc.want {
			t.Fatalf("Interpolate(%q, %v) = %q, want %q", tc.msg, tc.args, got, tc.want)
		}
	}
}

func TestMatchDeviceLocale(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.Language
	}{
		{"en", domain.LangEnglish},
		{"en-US", domain.LangEnglish},
		{"es", domain.LangSpanish},
		{"es-MX", domain.LangSpanish},
		{"es_MX.UTF-8", domain.LangSpanish},
		{"fr", domain.LangEnglish},
		{"fr-CA", domain.LangEnglish},
		{"", domain.LangEnglish},
		{"C", domain.LangEnglish},
		{"not a locale!!", domain.LangEnglish},
	}
	for _, tc := range cases {
		if got := MatchDeviceLocale(tc.raw); got != tc.want {
			t.Fatalf("MatchDeviceLocale(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
