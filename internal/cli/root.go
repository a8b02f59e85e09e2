// Package cli implements the repbook-cli commands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/claude/repbook/internal/config"
	"github.com/claude/repbook/internal/editor"
	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
	"github.com/claude/repbook/internal/storage"
	"github.com/claude/repbook/internal/transfer"
)

// app carries the persistent flags shared by every command.
type app struct {
	configPath string
	dbPath     string
	format     string
	verbose    bool
}

// env is an opened store with the services built on top of it.
type env struct {
	cfg      *config.Config
	kv       storage.KV
	repo     *repository.Repository
	editor   *editor.Editor
	transfer *transfer.Service
	locale   language.Tag
	log      *slog.Logger
}

func (e *env) Close() error { return e.kv.Close() }

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "repbook-cli",
		Short:         "Workout log: exercises, sessions and per-set records",
		Long:          "Manage exercises and workout sessions, record reps and weight per set, and export or import the collections as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath(), "Config file (optional)")
	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "SQLite database path, or :memory: (default: storage.path from config or $REPBOOK_STORAGE_PATH)")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "json", "Output format: json or text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(
		newExercisesCmd(a),
		newSessionsCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newThemeCmd(a),
		newPushCmd(a),
		newMCPCmd(a),
	)
	return root
}

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".repbook", "config.yaml")
}

// open loads config and opens the store. Callers must Close the env.
func (a *app) open(ctx context.Context, errOut io.Writer) (*env, error) {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.Path = a.dbPath
	}

	level, _ := cfg.Log.SlogLevel()
	log := a.newLogger(errOut, level)

	tag, err := cfg.Views.Tag()
	if err != nil {
		return nil, err
	}
	theme, err := models.ParseTheme(cfg.Theme.Default)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	repo := repository.New(kv, theme, log)
	return &env{
		cfg:      cfg,
		kv:       kv,
		repo:     repo,
		editor:   editor.New(repo, log),
		transfer: transfer.New(repo, log),
		locale:   tag,
		log:      log,
	}, nil
}

// run opens the env, calls fn and closes the env.
func (a *app) run(cmd *cobra.Command, fn func(*env) error) error {
	e, err := a.open(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

// newLogger logs to w when --verbose is set and discards otherwise. stdout is
// reserved for command output.
func (a *app) newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if !a.verbose {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *app) text() bool { return a.format == "text" }

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// confirm asks a yes/no question on the command's input. Anything but y/yes is no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Execute runs the CLI and reports errors the way every command does.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		exitErr(err)
	}
}

func exitErr(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
