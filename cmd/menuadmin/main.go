package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/menuadmin/internal/api"
	"github.com/Makepad-fr/menuadmin/internal/auth"
	"github.com/Makepad-fr/menuadmin/internal/cli"
	"github.com/Makepad-fr/menuadmin/internal/config"
	"github.com/Makepad-fr/menuadmin/internal/logger"
	"github.com/Makepad-fr/menuadmin/internal/ui"
	"go.uber.org/zap"
)

func main() {
	// Root flags (apply to every subcommand)
	envFile := flag.String("env", "", "env file to load (default .env)")
	apiURL := flag.String("api", "", "API base URL (overrides MENUADMIN_API_URL)")
	debug := flag.Bool("debug", false, "log requests at debug level")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	cfg := config.Load(*envFile)
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	ui.SetTheme(cfg.App.Theme)

	log, err := logger.New(loggerConfig(cfg, *debug, args[0] == "ui"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithToken(auth.Token()),
		api.WithLogger(log),
	)
	log.Debug("starting", zap.String("command", args[0]), zap.String("api", cfg.API.BaseURL))

	code := cli.Run(ctx, args, cli.Options{
		Client:           client,
		Logger:           log,
		ResyncCategories: cfg.App.ResyncCategories,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	stop()
	_ = log.Sync()
	os.Exit(code)
}

// loggerConfig sends logs to MENUADMIN_LOG_FILE when set. Otherwise the
// full-screen UI gets no logger and the other commands log to stderr only
// with -debug.
func loggerConfig(cfg *config.Config, debug, fullscreen bool) logger.Config {
	lc := logger.Config{
		IsDevelopment:     cfg.IsDevelopment(),
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		Output:            cfg.Logger.File,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if debug {
		lc.Level = "debug"
		if lc.Output == "" && !fullscreen {
			lc.Output = "stderr"
		}
	}
	return lc
}
