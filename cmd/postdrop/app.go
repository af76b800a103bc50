package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/postdrop/postdrop-go/api"
	"github.com/postdrop/postdrop-go/internal/config"
	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/locale"
	"github.com/postdrop/postdrop-go/session"
)

type app struct {
	cfg      config.Config
	sessions *session.Manager
	api      *api.Client
	in       io.Reader
	out      io.Writer
}

func newApp(cfg config.Config) *app {
	sessions := session.NewManager(session.NewFileStore(cfg.GetDataFolder()))
	a := &app{
		cfg:      cfg,
		sessions: sessions,
		in:       os.Stdin,
		out:      os.Stdout,
	}
	a.api = api.New(cfg, sessions,
		api.WithLogger(log.Logger),
		api.WithOnSessionExpired(func() {
			fmt.Fprintln(os.Stderr, a.msg("session.expired"))
		}),
	)
	return a
}

func (a *app) msg(id string) string {
	return locale.T(a.cfg.GetLanguage(), id)
}

// requireAuth guards protected commands: unauthenticated users are sent
// to login instead of running them.
func (a *app) requireAuth() error {
	if !a.sessions.IsAuthenticated() {
		return errors.Wrap(apperrors.ErrNotAuthenticated, "run `postdrop login` first")
	}
	return nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "[prompt] read input")
	}
	return strings.TrimSpace(line), nil
}
