package service

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/habitek/propmobile/internal/core/domain"
	"github.com/habitek/propmobile/internal/core/ports"
	"github.com/habitek/propmobile/internal/i18n"
)

// prefKeyLanguage is the plain-storage key for the saved language choice.
const prefKeyLanguage = "app_language"

// LocaleService implements ports.LocaleService over an embedded string
// bundle and a plain preference store. Instances are independently
// constructed (no package-level state) so tests can run them in isolation.
type LocaleService struct {
	bundle       *i18n.Bundle
	prefs        ports.PreferenceStore
	deviceLocale func() string
	log          zerolog.Logger

	mu        sync.Mutex
	active    domain.Language
	listeners []*localeSubscription
	nextID    int
}

var _ ports.LocaleService = (*LocaleService)(nil)

// NewLocaleService builds a LocaleService. deviceLocale reports the device's
// raw locale tag (empty when unknown) and is only consulted when no saved
// preference exists.
func NewLocaleService(bundle *i18n.Bundle, prefs ports.PreferenceStore, deviceLocale func() string, log zerolog.Logger) *LocaleService {
	if deviceLocale == nil {
		deviceLocale = func() string { return "" }
	}
	return &LocaleService{
		bundle:       bundle,
		prefs:        prefs,
		deviceLocale: deviceLocale,
		log:          log,
		active:       domain.DefaultLanguage,
	}
}

// LoadSavedLanguage resolves the startup language and makes it active:
// saved preference first, then the device locale matched against the
// supported set, then the default. Storage read failures are logged and
// treated as "no preference".
func (s *LocaleService) LoadSavedLanguage() domain.Language {
	lang := domain.DefaultLanguage

	saved, ok, err := s.prefs.Get(prefKeyLanguage)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Msg("read language preference failed")
		lang = i18n.MatchDeviceLocale(s.deviceLocale())
	case ok && domain.Language(saved).Supported():
		lang = domain.Language(saved)
	default:
		lang = i18n.MatchDeviceLocale(s.deviceLocale())
	}

	s.mu.Lock()
	s.active = lang
	s.mu.Unlock()
	return lang
}

// ChangeLanguage sets lang active, persists it, and synchronously notifies
// subscribers in registration order. A persistence failure is logged but
// does not block the change or the broadcast.
func (s *LocaleService) ChangeLanguage(lang domain.Language) error {
	if !lang.Supported() {
		return fmt.Errorf("unsupported language %q", lang)
	}

	s.mu.Lock()
	s.active = lang
	listeners := make([]*localeSubscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if err := s.prefs.Set(prefKeyLanguage, string(lang)); err != nil {
		s.log.Warn().Err(err).Str("language", string(lang)).Msg("persist language preference failed")
	}

	for _, sub := range listeners {
		sub.fn(lang)
	}
	return nil
}

// Language returns the currently active language.
func (s *LocaleService) Language() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// T resolves a dotted key against the active table, falling back to the
// default table and finally to the key itself. Optional args interpolate
// {{name}} placeholders.
func (s *LocaleService) T(key string, args ...map[string]any) string {
	msg, ok := s.bundle.Lookup(s.Language(), key)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return i18n.Interpolate(msg, args[0])
	}
	return msg
}

// Subscribe registers fn for language-change events and returns its handle.
// The caller must Cancel before dropping the listener.
func (s *LocaleService) Subscribe(fn ports.LocaleListener) ports.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sub := &localeSubscription{svc: s, id: s.nextID, fn: fn}
	s.listeners = append(s.listeners, sub)
	return sub
}

type localeSubscription struct {
	svc *LocaleService
	id  int
	fn  ports.LocaleListener
}

// Cancel removes the listener. Idempotent.
func (sub *localeSubscription) Cancel() {
	s := sub.svc
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == sub.id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}
