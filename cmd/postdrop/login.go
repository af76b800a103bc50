package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/postdrop/postdrop-go/authflow"
	apperrors "github.com/postdrop/postdrop-go/internal/errors"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	github := fs.Bool("github", false, "log in through the GitHub browser handshake")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Authenticated users are redirected away from the login view.
	if a.sessions.IsAuthenticated() {
		fmt.Fprintln(a.out, a.msg("login.alreadyLoggedIn"))
		return nil
	}

	if *github {
		return a.githubLogin(ctx)
	}
	return a.passwordLogin(ctx, *username, *password)
}

func (a *app) passwordLogin(ctx context.Context, username, password string) error {
	var err error
	if username == "" {
		if username, err = a.prompt("username"); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = a.prompt("password"); err != nil {
			return err
		}
	}

	login, err := a.api.PasswordLogin(ctx, username, password)
	if err != nil {
		return errors.Wrap(err, a.msg("login.passwordLoginFailed"))
	}
	if err := a.sessions.Set(login); err != nil {
		return errors.Wrap(err, a.msg("login.invalidLoginData"))
	}

	fmt.Fprintln(a.out, a.msg("login.loginSuccess"))
	return a.showDashboard(ctx)
}

func (a *app) githubLogin(ctx context.Context) error {
	flow := authflow.New(a.cfg, a.api, a.sessions,
		authflow.WithFlowLogger(log.Logger),
	)
	callback := authflow.NewCallback(a.api, a.sessions, flow.Deliver, log.Logger)
	receiver := authflow.NewReceiver(callback, a.cfg.GetCallbackAddr(), log.Logger)

	redirectURL, err := receiver.Start()
	if err != nil {
		return errors.Wrap(err, a.msg("login.githubLoginFailed"))
	}
	defer func() {
		_ = receiver.Close()
	}()
	log.Debug().Str("redirect", redirectURL).Msg("callback receiver listening")

	fmt.Fprintln(a.out, "waiting for the browser handshake to complete...")
	state, err := flow.Run(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrWindowBlocked) {
			return errors.Wrap(err, a.msg("login.cannotOpenAuthWindow"))
		}
		return errors.Wrap(err, a.msg("login.githubLoginFailed"))
	}
	if state != authflow.StateCompleted {
		// The user closed the window without completing; not an error.
		fmt.Fprintln(a.out, "login canceled")
		return nil
	}

	fmt.Fprintln(a.out, a.msg("login.loginSuccess"))
	return a.showDashboard(ctx)
}

// showDashboard is the post-login landing view: the account's post key.
func (a *app) showDashboard(ctx context.Context) error {
	key, err := a.api.PostKey(ctx)
	if err != nil {
		return errors.Wrap(err, "[showDashboard] fetch post key")
	}
	fmt.Fprintf(a.out, "post key: %s (created %s)\n", key.PostKey, key.CreatedAt)
	return nil
}
