package ports

// PreferenceStore is plain (non-secure) key/value persistence for user
// preferences such as the locale choice. Same absence semantics as the
// credential store: a missing key is ok=false, not an error.
type PreferenceStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
