package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/postdrop/postdrop-go/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("postdrop")
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg := config.New()
	setupLogger(cfg)

	if len(args) == 0 || args[0] == "help" {
		printUsage(cfg)
		return nil
	}

	a := newApp(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		return a.cmdLogout(args[1:])
	case "key":
		return a.cmdKey(ctx, args[1:])
	case "posts":
		return a.cmdPosts(ctx, args[1:])
	case "post":
		return a.cmdPost(ctx, args[1:])
	case "passwd":
		return a.cmdPasswd(ctx, args[1:])
	case "whoami":
		return a.cmdWhoami(args[1:])
	default:
		printUsage(cfg)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func setupLogger(cfg config.Config) {
	level := zerolog.InfoLevel
	if cfg.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func printUsage(cfg config.Config) {
	displayAppname(cfg.GetAppName())
	fmt.Println(`Usage: postdrop <command> [flags]

Commands:
  login     log in with a password, or --github for the browser handshake
  logout    destroy the local session
  key       show the account's post key
  posts     list posts (--page, --limit)
  post      create a test post through the post-key capability URL
  passwd    change the account password
  whoami    show the logged-in user`)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
