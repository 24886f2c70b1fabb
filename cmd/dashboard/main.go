// Command dashboard browses stored contact submissions from a terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"portfolio_backend/internal/apiclient"
	"portfolio_backend/internal/dashboardui"
	"portfolio_backend/internal/locale"
	"portfolio_backend/platform/config"
)

func main() {
	localeFlag := flag.String("locale", "", "interface language (en-US or pt-BR)")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := locale.MustLoad()
	stored := *localeFlag
	if stored == "" {
		if dir, err := locale.PreferenceDir(); err == nil {
			stored = locale.LoadPreference(dir)
		}
	}
	msgs := catalog.Messages(catalog.Detect(stored, cfg.Locale))

	state := dashboardui.New(apiclient.New(cfg.APIBaseURL, nil))
	c := newConsole(state, msgs, os.Stdout)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		c.prompt()
		if !scanner.Scan() {
			return
		}
		if quit := c.exec(ctx, scanner.Text()); quit || ctx.Err() != nil {
			return
		}
	}
}
