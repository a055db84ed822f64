// Command pantry is a terminal client for the Ginraidee inventory API.
//
//	pantry [-api URL] [-token JWT] [-lang th|en] <command> [flags]
//
// Commands: list, add, update, rm, expiring, recipe, suggest, login.
package main

import (
	"Ginraidee/cmd/config"
	"Ginraidee/domain"
	"Ginraidee/internal/utils"
	"Ginraidee/pkg/gateway"
	"Ginraidee/pkg/llm"
	"Ginraidee/pkg/logger"
	"Ginraidee/pkg/pantry"
	"Ginraidee/pkg/prompt"
	"Ginraidee/pkg/recipe"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// environment carries the collaborators main wires from configuration.
type environment struct {
	completer  llm.ChatCompleter
	httpClient *http.Client
	now        func() time.Time
}

type cli struct {
	out          io.Writer
	lang         domain.Language
	now          func() time.Time
	logger       *zap.Logger
	store        pantry.InventoryStore
	auth         gateway.AuthGateway
	orchestrator recipe.Orchestrator
	builder      *prompt.Builder
	board        *recipe.Board
}

type command func(ctx context.Context, c *cli, args []string) error

var commands = map[string]command{
	"list":     listCommand,
	"add":      addCommand,
	"update":   updateCommand,
	"rm":       removeCommand,
	"expiring": expiringCommand,
	"recipe":   recipeCommand,
	"suggest":  suggestCommand,
	"login":    loginCommand,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, environment{})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, env environment) int {
	fs := flag.NewFlagSet("pantry", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	apiURL := fs.String("api", "", "inventory API base URL (default API_BASE_URL)")
	token := fs.String("token", "", "bearer token (default API_TOKEN)")
	langFlag := fs.String("lang", "", "output language, th or en")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: pantry [flags] <list|add|update|rm|expiring|recipe|suggest|login> [args]")
		return 2
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		return 2
	}

	utils.LoadConfigFile(*configPath)
	level := "warn"
	if *verbose {
		level = "debug"
	}
	zl, err := logger.New(logger.Config{Level: level, Format: "console", OutputPaths: []string{"stderr"}})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer zl.Sync()

	session := gateway.Session{
		BaseURL:    firstNonEmpty(*apiURL, utils.GetConfig("API_BASE_URL")),
		Token:      firstNonEmpty(*token, utils.GetConfig("API_TOKEN")),
		HTTPClient: env.httpClient,
	}

	completer := env.completer
	if completer == nil {
		completer, err = llm.New(config.LLMConfig())
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	now := env.now
	if now == nil {
		now = time.Now
	}

	builder := prompt.NewBuilder()
	c := &cli{
		out:    stdout,
		lang:   domain.ParseLanguage(*langFlag),
		now:    now,
		logger: zl,
		store: pantry.NewInventoryStore(
			gateway.NewInventoryGateway(session, zl.Named("gateway")),
			utils.NewValidator(),
			pantry.WithLogger(zl.Named("store")),
		),
		auth:         gateway.NewAuthGateway(session, zl.Named("gateway")),
		orchestrator: recipe.NewOrchestrator(completer, builder, zl.Named("recipe"), recipe.WithTimeout(60*time.Second)),
		builder:      builder,
		board:        &recipe.Board{},
	}

	if err := cmd(ctx, c, fs.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, describe(err, c.lang))
		zl.Debug("command failed", zap.String("command", fs.Arg(0)), zap.Error(err))
		return 1
	}
	return 0
}

// describe prefers the localized message and falls back to the raw error for
// failures the user has to read verbatim, such as bad flags.
func describe(err error, lang domain.Language) string {
	var localized domain.LocalizedError
	if errors.As(err, &localized) ||
		errors.Is(err, domain.ErrInventoryItemNotFound) ||
		errors.Is(err, domain.ErrNoExpiringIngredients) {
		return domain.UserMessage(err, lang)
	}
	return err.Error()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
