package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/habitek/propmobile/internal/core/domain"
	"github.com/habitek/propmobile/internal/i18n"
)

type stubPrefStore struct {
	values map[string]string

	getErr error
	setErr error
}

func newStubPrefStore() *stubPrefStore {
	return &stubPrefStore{values: make(map[string]string)}
}

func (s *stubPrefStore) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *stubPrefStore) Set(key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func mustBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return b
}

func newLocale(t *testing.T, prefs *stubPrefStore, deviceLocale string) *LocaleService {
	t.Helper()
	return NewLocaleService(mustBundle(t), prefs, func() string { return deviceLocale }, zerolog.Nop())
}

func TestLocaleService_ChangeLanguageSwitchesTable(t *testing.T) {
	svc := newLocale(t, newStubPrefStore(), "")

	if err := svc.ChangeLanguage(domain.LangSpanish); err != nil {
		t.Fatalf("change language: %v", err)
	}
	if got := svc.T("common.cancel"); got != "Cancelar" {
		t.Fatalf("expected Spanish value, got %q", got)
	}
}

func TestLocaleService_MissingSpanishKeyFallsBackToEnglish(t *testing.T) {
	svc := newLocale(t, newStubPrefStore(), "")
	if err := svc.ChangeLanguage(domain.LangSpanish); err != nil {
		t.Fatalf("change language: %v", err)
	}

	// common.retry has no Spanish translation yet.
	if got := svc.T("common.retry"); got != "Retry" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}

func TestLocaleService_MissingKeyReturnsKey(t *testing.T) {
	svc := newLocale(t, newStubPrefStore(), "")
	if got := svc.T("common.doesNotExist"); got != "common.doesNotExist" {
		t.Fatalf("expected raw key, got %q", got)
	}
}

func TestLocaleService_Interpolation(t *testing.T) {
	svc := newLocale(t, newStubPrefStore(), "")
	got := svc.T("auth.welcome", map[string]any{"name": "María"})
	if got != "Welcome, María" {
		t.Fatalf("unexpected interpolation: %q", got)
	}
}

func TestLocaleService_LanguageRoundTripsThroughPersistence(t *testing.T) {
	prefs := newStubPrefStore()

	first := newLocale(t, prefs, "")
	if err := first.ChangeLanguage(domain.LangSpanish); err != nil {
		t.Fatalf("change language: %v", err)
	}

	// Simulated restart: new service instance, same storage.
	second := newLocale(t, prefs, "")
	if got := second.LoadSavedLanguage(); got != domain.LangSpanish {
		t.Fatalf("expected persisted es, got %q", got)
	}
}

func TestLocaleService_LoadSavedLanguageFallbacks(t *testing.T) {
	cases := []struct {
		name         string
		prefs        *stubPrefStore
		deviceLocale string
		want         domain.Language
	}{
		{"fresh install, unsupported device locale", newStubPrefStore(), "fr", domain.LangEnglish},
		{"fresh install, supported device locale", newStubPrefStore(), "es-MX", domain.LangSpanish},
		{"fresh install, no device locale", newStubPrefStore(), "", domain.LangEnglish},
		{"garbage saved value", &stubPrefStore{values: map[string]string{"app_language": "zz"}}, "es", domain.LangSpanish},
		{"storage read failure", &stubPrefStore{getErr: errors.New("io error")}, "es", domain.LangSpanish},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newLocale(t, tc.prefs, tc.deviceLocale)
			if got := svc.LoadSavedLanguage(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			if svc.Language() != tc.want {
				t.Fatalf("active language not set")
			}
		})
	}
}

func TestLocaleService_SubscribersNotifiedInOrder(t *testing.T) {
	svc := newLocale(t, newStubPrefStore(), "")

	var order []string
	subA := svc.Subscribe(func(l domain.Language) { order = append(order, "a:"+string(l)) })
	svc.Subscribe(func(l domain.Language) { order = append(order, "b:"+string(l)) })

	if err := svc.ChangeLanguage(domain.LangSpanish); err != nil {
		t.Fatalf("change language: %v", err)
	}
	if len(order) != 2 || order[0] != "a:es" || order[1] != "b:es" {
		t.Fatalf("unexpected delivery %v", order)
	}

	subA.Cancel()
	order = nil
	if err := svc.ChangeLanguage(domain.LangEnglish); err != nil {
		t.Fatalf("change language: %v", err)
	}
	if len(order) != 1 || order[0] != "b:en" {
		t.Fatalf("cancelled subscriber still delivered: %v", order)
	}
}

func TestLocaleService_PersistFailureStillBroadcasts(t *testing.T) {
	prefs := newStubPrefStore()
	prefs.setErr = errors.New("disk full")
	svc := newLocale(t, prefs, "")

	notified := false
	svc.Subscribe(func(domain.Language) { notified = true })

	if err := svc.ChangeLanguage(domain.LangSpanish); err != nil {
		t.Fatalf("change language: %v", err)
	}
	if !notified {
		t.Fatalf("listeners skipped when persistence fails")
	}
	if svc.Language() != domain.LangSpanish {
		t.Fatalf("active language not updated")
	}
}

func TestLocaleService_ChangeLanguageRejectsUnsupported(t *testing.T) {
	svc := newLocale(t, newStubPrefStore(), "")
	if err := svc.ChangeLanguage("fr"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
	if svc.Language() != domain.DefaultLanguage {
		t.Fatalf("active language changed on rejected input")
	}
}
