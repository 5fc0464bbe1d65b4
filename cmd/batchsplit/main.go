package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/batchsplit/internal/config"
	"github.com/bamsammich/batchsplit/internal/engine"
	"github.com/bamsammich/batchsplit/internal/event"
	"github.com/bamsammich/batchsplit/internal/journal"
	"github.com/bamsammich/batchsplit/internal/stats"
	"github.com/bamsammich/batchsplit/internal/ui"
)

var version = "dev"

var errLogInsideTarget = errors.New("log file must not live directly inside the target directory")

// Exit codes.
const (
	exitOK          = 0
	exitNotDir      = 1 // also usage errors
	exitListFailed  = 2
	exitSetupFailed = 3
	exitCancelled   = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	journalPath string
	logFile     string
	quiet       bool
	verbose     bool
	dryRun      bool
	noLock      bool
	showVersion bool
}

//nolint:revive // cognitive-complexity: CLI entry point wires config, logging, presenter and engine
func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "batchsplit [flags] <directory>",
		Short: "Split a flat directory of files into numbered batch folders",
		Long: fmt.Sprintf(`Split the loose files of a directory into sub-directories of %d files each,
named %s001, %s002, and so on.

Files are assigned in byte-wise path order. Existing batch folders are never
touched; numbering resumes at the first free index, so re-running after an
interrupted or partial run picks up where it left off.`,
			engine.DefaultChunkSize, engine.BatchPrefix, engine.BatchPrefix),
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(stdout, "batchsplit %s\n", version)
				return nil
			}
			return runSplit(cmd, args[0], opts, stdout, stderr)
		},
	}
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().BoolVar(&opts.showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show the planned batches without moving anything")
	rootCmd.Flags().BoolVar(&opts.noLock, "no-lock", false, "do not take the per-directory run lock")
	rootCmd.Flags().
		StringVar(&opts.journalPath, "journal", "", "record every move in a SQLite journal at FILE")
	rootCmd.Flags().StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.AddCommand(newDocsCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Usage: %s\n", rootCmd.UseLine())
		return exitNotDir
	}
	return exitOK
}

func runSplit(cmd *cobra.Command, dir string, opts options, stdout, stderr io.Writer) error {
	cfg, cfgErr := config.Load()
	applyConfigDefaults(cmd, cfg.Defaults, &opts)
	ui.ApplyTheme(cfg.Theme)

	// Validate before anything else touches the disk.
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(stderr, "Error: %s is not a directory.\n", dir)
		return &exitError{code: exitNotDir}
	}

	// Configure logging.
	logLevel := slog.LevelInfo
	if opts.verbose {
		logLevel = slog.LevelDebug
	} else if opts.quiet {
		logLevel = slog.LevelWarn
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel})
	var logHandler slog.Handler = textHandler
	if opts.logFile != "" {
		if directlyInside(opts.logFile, dir) {
			fmt.Fprintf(stderr, "Error: %s: %v\n", opts.logFile, errLogInsideTarget)
			return &exitError{code: exitSetupFailed}
		}
		lf, err := os.Create(opts.logFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: open log file: %v\n", err)
			return &exitError{code: exitSetupFailed}
		}
		defer lf.Close()
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))

	if cfgErr != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", cfgErr)
	}
	if opts.dryRun {
		slog.Info("dry run mode")
	}

	// The lock comes before the journal so a locked-out run records nothing.
	var held *engine.RunLock
	if !opts.noLock && !opts.dryRun {
		lock, err := engine.AcquireLock(dir)
		if err != nil {
			return splitError(err, stderr)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				slog.Warn("failed to release run lock", "path", lock.Path(), "error", err)
			}
		}()
		held = lock
		slog.Debug("run lock acquired", "path", lock.Path())
	}

	var jrnl *journal.Journal
	if opts.journalPath != "" && !opts.dryRun {
		var err error
		jrnl, err = journal.Open(opts.journalPath, dir)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return &exitError{code: exitSetupFailed}
		}
		defer func() {
			if err := jrnl.Close(); err != nil {
				slog.Warn("failed to close journal", "path", jrnl.Path(), "error", err)
			}
		}()
		slog.Debug("journal opened", "path", jrnl.Path(), "run", jrnl.RunID())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)

	// When --log is set, tee events through a goroutine that writes
	// structured records before forwarding to the presenter.
	presenterEvents := (<-chan event.Event)(events)
	if opts.logFile != "" {
		presenterEvents = teeToLog(events)
	}

	presenter := ui.NewPresenter(ui.Config{
		Writer:    stdout,
		ErrWriter: stderr,
		Stats:     collector,
		Quiet:     opts.quiet,
		Styled:    isTerminal(stderr),
	})

	engineCfg := engine.Config{
		Dir:    dir,
		DryRun: opts.dryRun,
		Held:   held,
		Events: events,
		Stats:  collector,
	}
	if jrnl != nil {
		engineCfg.Journal = jrnl
	}

	slog.Debug("starting split", "dir", dir, "chunk", engine.DefaultChunkSize, "lock", held != nil)

	var presenterErr error
	var presenterWg sync.WaitGroup
	presenterWg.Add(1)
	go func() {
		defer presenterWg.Done()
		presenterErr = presenter.Run(presenterEvents)
	}()

	result := engine.Run(ctx, engineCfg)
	stop()
	close(events)
	presenterWg.Wait()
	if presenterErr != nil {
		fmt.Fprintf(stderr, "presenter: %v\n", presenterErr)
	}

	if result.Err != nil {
		return splitError(result.Err, stderr)
	}

	if result.FilesFound > 0 && !opts.dryRun && !opts.quiet {
		fmt.Fprintln(stderr, presenter.Summary())
	}
	slog.Debug("split finished", "stats", result.Stats.String())
	return nil
}

// splitError reports a failed run and maps it to an exit code.
func splitError(err error, stderr io.Writer) error {
	var readErr *engine.DirectoryReadError
	switch {
	case errors.Is(err, engine.ErrNotDirectory):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return &exitError{code: exitNotDir}
	case errors.As(err, &readErr):
		fmt.Fprintf(stderr, "Failed to read directory %s: %v\n", readErr.Path, readErr.Err)
		return &exitError{code: exitListFailed}
	case errors.Is(err, engine.ErrLocked):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return &exitError{code: exitSetupFailed}
	case errors.Is(err, context.Canceled):
		slog.Warn("interrupted; re-run to continue from the next free batch")
		return &exitError{code: exitCancelled}
	default:
		slog.Error("split failed", "error", err)
		return &exitError{code: exitSetupFailed}
	}
}

func teeToLog(events <-chan event.Event) <-chan event.Event {
	teed := make(chan event.Event, 256)
	go func() {
		for ev := range events {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.String("batch", ev.Batch),
			}
			if ev.Path != "" {
				attrs = append(attrs, slog.String("path", ev.Path), slog.Int64("size", ev.Size))
			}
			if ev.Count > 0 {
				attrs = append(attrs, slog.Int("count", ev.Count))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			// Debug keeps these out of the stderr handler; the presenter
			// already prints failures there.
			slog.LogAttrs(context.Background(), slog.LevelDebug, "batchsplit.event", attrs...)
			teed <- ev
		}
		close(teed)
	}()
	return teed
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) {
	if !cmd.Flags().Changed("quiet") && defaults.Quiet != nil {
		opts.quiet = *defaults.Quiet
	}
	if !cmd.Flags().Changed("verbose") && defaults.Verbose != nil {
		opts.verbose = *defaults.Verbose
	}
	if !cmd.Flags().Changed("no-lock") && defaults.Lock != nil {
		opts.noLock = !*defaults.Lock
	}
	if !cmd.Flags().Changed("journal") && defaults.Journal != nil {
		opts.journalPath = *defaults.Journal
	}
	if !cmd.Flags().Changed("log") && defaults.Log != nil {
		opts.logFile = *defaults.Log
	}
}

// directlyInside reports whether path would be an immediate child of dir.
func directlyInside(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return filepath.Dir(absPath) == absDir
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTTY(f.Fd())
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
