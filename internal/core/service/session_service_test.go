package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/habitek/propmobile/internal/core/domain"
)

type stubCredStore struct {
	token    string
	hasToken bool
	userData []byte
	hasUser  bool

	readErr  error
	writeErr error
}

func (s *stubCredStore) Token() (string, bool, error) {
	if s.readErr != nil {
		return "", false, s.readErr
	}
	return s.token, s.hasToken, nil
}

func (s *stubCredStore) SetToken(token string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.token, s.hasToken = token, true
	return nil
}

func (s *stubCredStore) DeleteToken() error {
	s.token, s.hasToken = "", false
	return nil
}

func (s *stubCredStore) UserData() ([]byte, bool, error) {
	if s.readErr != nil {
		return nil, false, s.readErr
	}
	return s.userData, s.hasUser, nil
}

func (s *stubCredStore) SetUserData(data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.userData, s.hasUser = data, true
	return nil
}

func (s *stubCredStore) DeleteUserData() error {
	s.userData, s.hasUser = nil, false
	return nil
}

type stubAuthAPI struct {
	loginToken string
	loginUser  *domain.User
	loginErr   error

	logoutErr   error
	logoutCalls int

	meUser *domain.User
	meErr  error
}

func (a *stubAuthAPI) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if a.loginErr != nil {
		return "", nil, a.loginErr
	}
	return a.loginToken, a.loginUser, nil
}

func (a *stubAuthAPI) Logout(_ context.Context) error {
	a.logoutCalls++
	return a.logoutErr
}

func (a *stubAuthAPI) Me(_ context.Context) (*domain.User, error) {
	return a.meUser, a.meErr
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "u-1",
		Email: "maria@example.com",
		Name:  "María",
		Role:  domain.RoleOwner,
	}
}

func newSession(store *stubCredStore, api *stubAuthAPI) *SessionService {
	return NewSessionService(store, api, zerolog.Nop())
}

func TestSessionService_LoginLogoutBracketsAuthentication(t *testing.T) {
	store := &stubCredStore{}
	svc := newSession(store, &stubAuthAPI{loginToken: "tok-1", loginUser: testUser()})

	if svc.IsAuthenticated() {
		t.Fatalf("authenticated before login")
	}

	user, err := svc.Login(context.Background(), "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u-1" {
		t.Fatalf("unexpected user %+v", user)
	}
	if !svc.IsAuthenticated() {
		t.Fatalf("not authenticated after login")
	}

	svc.Logout(context.Background())
	if svc.IsAuthenticated() {
		t.Fatalf("authenticated after logout")
	}
	if svc.User() != nil {
		t.Fatalf("user survives logout")
	}
}

func TestSessionService_LoginPropagatesAPIError(t *testing.T) {
	store := &stubCredStore{}
	wantErr := domain.ErrUnauthorized
	svc := newSession(store, &stubAuthAPI{loginErr: wantErr})

	_, err := svc.Login(context.Background(), "maria@example.com", "bad")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if store.hasToken {
		t.Fatalf("token stored after failed login")
	}
}

func TestSessionService_LoginRejectsMalformedInput(t *testing.T) {
	svc := newSession(&stubCredStore{}, &stubAuthAPI{loginToken: "tok", loginUser: testUser()})

	for _, tc := range []struct{ email, password string }{
		{"", "secret"},
		{"maria@example.com", ""},
		{"not-an-email", "secret"},
	} {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("email=%q password=%q: expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

func TestSessionService_LoginPersistFailureClearsStore(t *testing.T) {
	store := &stubCredStore{writeErr: errors.New("disk full")}
	svc := newSession(store, &stubAuthAPI{loginToken: "tok", loginUser: testUser()})

	if _, err := svc.Login(context.Background(), "maria@example.com", "secret"); err == nil {
		t.Fatalf("expected error when persistence fails")
	}
	if store.hasToken {
		t.Fatalf("token left behind after persist failure")
	}
}

func TestSessionService_LogoutClearsEvenWhenServerFails(t *testing.T) {
	store := &stubCredStore{}
	api := &stubAuthAPI{loginToken: "tok", loginUser: testUser(), logoutErr: errors.New("network down")}
	svc := newSession(store, api)

	if _, err := svc.Login(context.Background(), "maria@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	svc.Logout(context.Background())

	if api.logoutCalls != 1 {
		t.Fatalf("logout endpoint not called")
	}
	if store.hasToken || store.hasUser {
		t.Fatalf("store not cleared: %+v", store)
	}
}

func TestSessionService_UserToleratesCorruptData(t *testing.T) {
	for _, tc := range []struct {
		name  string
		store *stubCredStore
	}{
		{"absent", &stubCredStore{}},
		{"malformed", &stubCredStore{userData: []byte("{not json"), hasUser: true}},
		{"empty", &stubCredStore{userData: []byte(""), hasUser: true}},
		{"read error", &stubCredStore{readErr: errors.New("keychain locked")}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := newSession(tc.store, &stubAuthAPI{})
			if u := svc.User(); u != nil {
				t.Fatalf("expected nil user, got %+v", u)
			}
			if role := svc.Role(); role != domain.RoleNone {
				t.Fatalf("expected RoleNone, got %q", role)
			}
		})
	}
}

func TestSessionService_RoleUnrecognizedCollapsesToNone(t *testing.T) {
	store := &stubCredStore{userData: []byte(`{"id":"u-9","role":"superuser"}`), hasUser: true}
	svc := newSession(store, &stubAuthAPI{})

	if role := svc.Role(); role != domain.RoleNone {
		t.Fatalf("expected RoleNone for unrecognized role, got %q", role)
	}
}

func TestSessionService_IsAuthenticatedFailsClosedOnStorageError(t *testing.T) {
	svc := newSession(&stubCredStore{readErr: errors.New("keychain locked")}, &stubAuthAPI{})
	if svc.IsAuthenticated() {
		t.Fatalf("storage error should read as unauthenticated")
	}
}

func TestSessionService_ValidateSessionNoToken(t *testing.T) {
	svc := newSession(&stubCredStore{}, &stubAuthAPI{meUser: testUser()})
	if svc.ValidateSession(context.Background()) {
		t.Fatalf("validated without a token")
	}
}

func TestSessionService_ValidateSessionFailClosed(t *testing.T) {
	store := &stubCredStore{token: "tok", hasToken: true, userData: []byte(`{"id":"u-1"}`), hasUser: true}
	svc := newSession(store, &stubAuthAPI{meErr: errors.New("503")})

	if svc.ValidateSession(context.Background()) {
		t.Fatalf("validated despite who-am-I failure")
	}
	if store.hasToken || store.hasUser {
		t.Fatalf("store not cleared on validation failure: %+v", store)
	}
}

func TestSessionService_ValidateSessionRefreshesSnapshot(t *testing.T) {
	store := &stubCredStore{token: "tok", hasToken: true}
	fresh := testUser()
	fresh.Name = "María Elena"
	svc := newSession(store, &stubAuthAPI{meUser: fresh})

	if !svc.ValidateSession(context.Background()) {
		t.Fatalf("validation failed")
	}
	u := svc.User()
	if u == nil || u.Name != "María Elena" {
		t.Fatalf("snapshot not refreshed: %+v", u)
	}
}
