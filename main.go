package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"seek/internal/config"
	"seek/internal/domain"
	"seek/internal/search"
	"seek/internal/ui"
)

type cliFlags struct {
	regex          bool
	fullPath       bool
	filesOnly      bool
	dirsOnly       bool
	showPermErrors bool
	maxDepth       int
	maxFiles       uint64
	timeoutSeconds uint64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "seek [path] pattern",
		Short: "Search files using glob or regex patterns",
		Long: `Seek searches a directory tree in parallel for entries whose name or
path matches a glob or regular-expression pattern, with live progress
and safety limits for very large or slow filesystems.

Usage:
  seek <PATH> <PATTERN>      (glob by default)
  seek <PATH> <PATTERN> -r   (regex mode)
  seek <PATTERN>             (searches the current directory)`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.regex, "regex", "r", false, "interpret the pattern as a regular expression")
	flags.BoolVarP(&f.fullPath, "path", "p", false, "match against the full path instead of the filename")
	flags.BoolVarP(&f.filesOnly, "files-only", "f", false, "only report files")
	flags.BoolVarP(&f.dirsOnly, "dirs-only", "d", false, "only report directories")
	flags.IntVarP(&f.maxDepth, "max-depth", "D", -1, "maximum search depth (unlimited if negative)")
	flags.BoolVarP(&f.showPermErrors, "show-permission-errors", "e", false, "print permission errors as they occur")
	flags.Uint64VarP(&f.maxFiles, "max-files", "n", 500000, "maximum number of entries to scan (0 = unlimited)")
	flags.Uint64VarP(&f.timeoutSeconds, "timeout", "t", 600, "search timeout in seconds (0 = none)")

	return cmd
}

func run(cmd *cobra.Command, f *cliFlags, args []string) error {
	setupLogging()

	root, pattern := resolveArgs(args)

	cfg := &config.Config{
		Root:                 root,
		Pattern:              pattern,
		Mode:                 domain.ModeGlob,
		Target:               domain.TargetFilename,
		FilesOnly:            f.filesOnly,
		DirsOnly:             f.dirsOnly,
		MaxDepth:             f.maxDepth,
		MaxFiles:             f.maxFiles,
		Timeout:              time.Duration(f.timeoutSeconds) * time.Second,
		ShowPermissionErrors: f.showPermErrors,
	}
	if f.regex {
		cfg.Mode = domain.ModeRegex
	}
	if f.fullPath {
		cfg.Target = domain.TargetFullPath
	}

	applyDefaults(cmd, cfg)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	s, err := search.New(cfg, os.Stdout, interactive)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := s.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(ui.RenderSummary(sum))
	if hint := ui.PermissionHint(sum.PermissionErrors, root, pattern); hint != "" {
		fmt.Println()
		fmt.Println(hint)
	}

	return nil
}

// resolveArgs infers the path and pattern from the positionals: with a
// single argument, an existing directory means "search it for
// everything", anything else is a pattern over the current directory.
func resolveArgs(args []string) (root, pattern string) {
	if len(args) == 2 {
		return args[0], args[1]
	}

	arg := args[0]
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return arg, "*"
	}
	return ".", arg
}

// applyDefaults overlays the optional seek.toml defaults for flags the
// user did not set on the command line
func applyDefaults(cmd *cobra.Command, cfg *config.Config) {
	defaults, err := config.LoadDefaults()
	if err != nil {
		log.Printf("Ignoring defaults file: %v", err)
		return
	}

	flags := cmd.Flags()
	if defaults.MaxFiles != nil && !flags.Changed("max-files") {
		cfg.MaxFiles = *defaults.MaxFiles
	}
	if defaults.TimeoutSeconds != nil && !flags.Changed("timeout") {
		cfg.Timeout = time.Duration(*defaults.TimeoutSeconds) * time.Second
	}
	if defaults.ShowPermissionErrors != nil && !flags.Changed("show-permission-errors") {
		cfg.ShowPermissionErrors = *defaults.ShowPermissionErrors
	}
	if defaults.Workers != nil {
		cfg.Workers = *defaults.Workers
	}
}

// setupLogging keeps internal logging off the live progress line:
// discarded unless SEEK_LOG points at a file
func setupLogging() {
	path := os.Getenv("SEEK_LOG")
	if path == "" {
		log.SetOutput(io.Discard)
		return
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(logFile)
}
