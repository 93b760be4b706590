package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"nichefold/internal/browser"
	"nichefold/internal/logging"
	"nichefold/internal/prompt"
	"nichefold/internal/workspace"
	"nichefold/pkg/config"
	"nichefold/pkg/history"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// reportedError is a failure the interactive flow already showed the
// operator.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nichefold",
		Short:         "Scaffold a client project folder for a business niche",
		Long:          `Interactively creates a standardized folder tree and starter documents for a new client, based on the client's business niche.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newHistoryCmd())
	return rootCmd
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var recorder workspace.Recorder
	if err := cfg.EnsureStateDir(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	} else {
		stopLog := logging.Setup(cfg.LogPath())
		defer stopLog()

		db, err := history.Open(cfg.HistoryPath())
		if err != nil {
			slog.Warn("history disabled", slog.String("error", err.Error()))
		} else {
			defer db.Close()
			recorder = &historyRecorder{db: db}
		}
	}

	mgr := workspace.NewManager(workspace.Config{
		BasePath: cfg.BasePath,
		FS:       osfs.New("/"),
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Revealer: revealer(),
		Recorder: recorder,
		Width:    terminalWidth(),
	})

	o, err := mgr.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return nil
		}
		return reportedError{err: err}
	}
	slog.Debug("run finished", slog.String("root", o.Result.Root))
	return nil
}

// revealer offers the file browser only to an operator sitting at a
// terminal on a machine that has an opener.
func revealer() workspace.Revealer {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	if opener := browser.Detect(); opener != nil {
		return opener
	}
	return nil
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	if w > 60 {
		return 60
	}
	return w
}

// Main runs the command line and returns the process exit status.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(Main())
}
