package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/ptop/internal/app"
	"github.com/Dicklesworthstone/ptop/internal/config"
	"github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/export"
	"github.com/Dicklesworthstone/ptop/internal/logging"
	"github.com/Dicklesworthstone/ptop/internal/sampler"
	"github.com/Dicklesworthstone/ptop/internal/ui"
)

// Seams replaced in tests.
var (
	newSource  = func(sig sampler.Signal) app.MetricsSource { return sampler.New(sig) }
	isTerminal = stdioIsTerminal
	runTUI     = ui.RunTUI
)

func stdioIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func run(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	if cfg.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file: "+cfg.LogFile,
			"Check the directory exists and is writable")
	}
	defer closeLog()

	log.Info("starting",
		slog.String("version", version),
		slog.Duration("interval", cfg.Interval),
		slog.Int("history", cfg.HistorySize),
		slog.String("sort", cfg.Sort),
		slog.Bool("ascending", cfg.Ascending),
		slog.String("filter", cfg.Filter),
		slog.String("signal", cfg.Signal))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := newSource(cfg.TermSignal())
	format, _ := export.ParseFormat(cfg.Format)
	out := cmd.OutOrStdout()

	switch {
	case cfg.JSON:
		return export.Once(ctx, out, src, cfg.Interval, format)
	case cfg.JSONStream:
		return export.Stream(ctx, out, src, cfg.Interval, format, log)
	}

	if !isTerminal() {
		return errors.New(errors.ErrTerminal,
			"ptop needs an interactive terminal",
			"Run it from a terminal, or use --json / --json-stream for plain output")
	}

	a := app.New(src, app.Options{
		Sort:        cfg.SortSpec(),
		Filter:      cfg.Filter,
		HistorySize: cfg.HistorySize,
		Logger:      log,
	})
	err = runTUI(ctx, a, cfg.Interval)
	log.Info("exit", slog.Any("error", err))
	return err
}
