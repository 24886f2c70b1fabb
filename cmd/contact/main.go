// Command contact runs the chat-style contact form in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"portfolio_backend/internal/apiclient"
	"portfolio_backend/internal/locale"
	"portfolio_backend/internal/wizard"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/logger"
)

func main() {
	localeFlag := flag.String("locale", "", "interface language (en-US or pt-BR); remembered for next time")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := locale.MustLoad()
	msgs := catalog.Messages(resolveLocale(catalog, *localeFlag, cfg.Locale, log))

	api := apiclient.New(cfg.APIBaseURL, nil)
	submit := wizard.SubmitterFunc(func(ctx context.Context, sub wizard.Submission) error {
		resp, err := api.SubmitContact(ctx, apiclient.ContactRequest{
			SelectedMethods: sub.SelectedMethods,
			ContactDetails:  sub.ContactDetails,
			Subject:         sub.Subject,
			Message:         sub.Message,
		})
		if err != nil {
			return err
		}
		log.Debug("contact submission stored", "id", resp.ID)
		return nil
	})

	changed := make(chan struct{}, 1)
	w := wizard.New(wizard.Options{
		Messages:  msgs,
		Submitter: submit,
		Logger:    log,
		OnChange: func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		},
	})
	defer w.Close()

	term := newTerminal(w, msgs, os.Stdin, os.Stdout, changed)
	if err := term.run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveLocale applies an explicit -locale choice, then the stored preference, then $LOCALE/$LANG.
func resolveLocale(catalog *locale.Catalog, explicit, platform string, log *logger.Logger) locale.Locale {
	dir, err := locale.PreferenceDir()
	if err != nil {
		log.Debug("locale preference unavailable", "error", err)
		return catalog.Match(platform)
	}

	if explicit != "" {
		if loc, ok := catalog.Parse(explicit); ok {
			if err := locale.SavePreference(dir, loc); err != nil {
				log.Warn("failed to save locale preference", "error", err)
			}
			return loc
		}
		log.Warn("unsupported locale ignored", "locale", explicit)
	}

	return catalog.Detect(locale.LoadPreference(dir), platform)
}
