package ports

import "github.com/habitek/propmobile/internal/core/domain"

// LocaleListener receives the new language after a locale change. Delivery is
// synchronous, in registration order.
type LocaleListener func(domain.Language)

// Subscription is the handle returned by Subscribe. The subscriber owns its
// lifetime: a view that unmounts must Cancel before it goes away.
type Subscription interface {
	Cancel()
}

// LocaleService manages the active language and the string tables.
type LocaleService interface {
	// LoadSavedLanguage resolves the startup language: saved preference,
	// then device locale, then the default. Always returns a supported tag
	// and sets it active.
	LoadSavedLanguage() domain.Language

	// ChangeLanguage sets lang active, persists it, and notifies listeners.
	ChangeLanguage(lang domain.Language) error

	// Language returns the currently active language.
	Language() domain.Language

	// T resolves a dotted key against the active table, falling back to the
	// default table and finally to the key itself. Never fails.
	T(key string, args ...map[string]any) string

	Subscribe(fn LocaleListener) Subscription
}
