package ports

// CredentialStore abstracts the device's secure storage for the two session
// keys: the opaque bearer token and the serialized user snapshot.
//
// Absence is not an error: reading a key that was never written (or was
// cleared) returns ok=false with a nil error. Implementations must make each
// individual read and write atomic; callers never perform a
// read-modify-write across suspension points on the same key.
type CredentialStore interface {
	Token() (token string, ok bool, err error)
	SetToken(token string) error
	DeleteToken() error

	UserData() (data []byte, ok bool, err error)
	SetUserData(data []byte) error
	DeleteUserData() error
}

// TokenClearer is the narrow slice of CredentialStore the API client needs
// for its 401 side effect.
type TokenClearer interface {
	Token() (token string, ok bool, err error)
	DeleteToken() error
}
