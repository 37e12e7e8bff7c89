// Command propmobile is the terminal surface of the property-management
// client core: it drives the same session, navigation, and locale services a
// mobile shell would, against a configured backend.
//
// Usage:
//
//	propmobile login -email you@example.com -password secret
//	propmobile whoami | validate | nav | properties | logout
//	propmobile lang [en|es]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"

	"github.com/habitek/propmobile/internal/core/domain"
	"github.com/habitek/propmobile/internal/core/ports"
	"github.com/habitek/propmobile/internal/core/service"
	"github.com/habitek/propmobile/internal/i18n"
	"github.com/habitek/propmobile/internal/infrastructure/api"
	"github.com/habitek/propmobile/internal/infrastructure/config"
	"github.com/habitek/propmobile/internal/infrastructure/storage"
	"github.com/habitek/propmobile/pkg/logger"
)

// app bundles the wired services each subcommand works with.
type app struct {
	session   ports.SessionService
	locale    ports.LocaleService
	nav       *service.NavigationComposer
	apiClient *api.Client
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	secret := cfg.DeviceSecret
	if secret == "" {
		secret, err = storage.DeviceSecret(cfg.DataDir)
		if err != nil {
			return err
		}
	}
	creds, err := storage.NewSecureStore(cfg.DataDir, secret)
	if err != nil {
		return err
	}
	prefs, err := storage.NewPrefStore(cfg.DataDir)
	if err != nil {
		return err
	}
	bundle, err := i18n.Load()
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.APIBaseURL, creds, cfg.APITimeout, log)
	a := &app{
		session:   service.NewSessionService(creds, api.NewAuthAPI(client), log),
		locale:    service.NewLocaleService(bundle, prefs, config.DeviceLocale, log),
		nav:       service.NewNavigationComposer(),
		apiClient: client,
	}

	if cfg.Language != "" && domain.Language(cfg.Language).Supported() {
		_ = a.locale.ChangeLanguage(domain.Language(cfg.Language))
	} else {
		a.locale.LoadSavedLanguage()
	}

	if len(args) == 0 {
		banner()
		usage()
		return nil
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println(a.locale.T("auth.logout"), "✓")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "validate":
		return a.cmdValidate(ctx)
	case "nav":
		return a.cmdNav()
	case "lang":
		return a.cmdLang(rest)
	case "properties":
		return a.cmdProperties(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUnauthorized) {
			return errors.New(a.locale.T("auth.invalidCredentials"))
		}
		return err
	}
	fmt.Println(a.locale.T("auth.welcome", map[string]any{"name": user.Name}))
	return nil
}

func (a *app) cmdWhoami() error {
	user := a.session.User()
	if !a.session.IsAuthenticated() || user == nil {
		return domain.ErrNoSession
	}
	fmt.Printf("%s <%s> — %s\n", user.Name, user.Email, user.Role)
	return nil
}

func (a *app) cmdValidate(ctx context.Context) error {
	if a.session.ValidateSession(ctx) {
		fmt.Println("session valid")
		return nil
	}
	return errors.New(a.locale.T("auth.sessionExpired"))
}

func (a *app) cmdNav() error {
	dests, err := a.nav.Compose(a.session.Role())
	if err != nil {
		if errors.Is(err, domain.ErrNoRole) {
			return domain.ErrNoSession
		}
		return err
	}
	for i, d := range dests {
		fmt.Printf("%d. %-14s [%s]\n", i+1, a.locale.T(d.LabelKey), d.Icon)
	}
	return nil
}

func (a *app) cmdLang(args []string) error {
	if len(args) == 0 {
		fmt.Println(a.locale.Language())
		return nil
	}
	if err := a.locale.ChangeLanguage(domain.Language(args[0])); err != nil {
		return err
	}
	fmt.Println(a.locale.T("common.ok"))
	return nil
}

func (a *app) cmdProperties(ctx context.Context) error {
	props, err := a.apiClient.Properties(ctx)
	if err != nil {
		return err
	}
	for _, p := range props {
		status := "·"
		if p.Occupied {
			status = "●"
		}
		fmt.Printf("%s %-20s %s\n", status, p.Name, p.Address)
	}
	return nil
}

func banner() {
	figure.NewFigure("propmobile", "", true).Print()
}

func usage() {
	fmt.Println(`commands:
  login -email <email> -password <password>
  logout
  whoami
  validate
  nav
  lang [en|es]
  properties`)
}
