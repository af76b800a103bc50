package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"

	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/internal/utils"
)

func (a *app) cmdKey(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	return a.showDashboard(ctx)
}

func (a *app) cmdWhoami(args []string) error {
	login := a.sessions.Current()
	if login == nil {
		return errors.Wrap(apperrors.ErrNotAuthenticated, "no active session")
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", login.User.Username, utils.Value(login.User.ID))
	return nil
}

func (a *app) cmdLogout(args []string) error {
	a.sessions.Clear()
	a.sessions.ClearOAuthState()
	fmt.Fprintln(a.out, a.msg("logout.done"))
	return nil
}

func (a *app) cmdPasswd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	current := fs.String("current", "", "current password")
	newPass := fs.String("new", "", "new password")
	confirm := fs.String("confirm", "", "new password again")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	var err error
	if *current == "" {
		if *current, err = a.prompt("current password"); err != nil {
			return err
		}
	}
	if *newPass == "" {
		if *newPass, err = a.prompt("new password"); err != nil {
			return err
		}
	}
	if *confirm == "" {
		if *confirm, err = a.prompt("new password again"); err != nil {
			return err
		}
	}

	if *current == "" {
		return errors.New(a.msg("settings.enterCurrentPassword"))
	}
	if len(*newPass) < 6 {
		return errors.New(a.msg("settings.passwordMinLength"))
	}
	if *newPass != *confirm {
		return errors.New(a.msg("settings.passwordsNotMatch"))
	}
	if *current == *newPass {
		return errors.New(a.msg("settings.passwordSameAsCurrent"))
	}

	if err := a.api.ChangePassword(ctx, *current, *newPass); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.msg("settings.passwordChanged"))
	return nil
}
