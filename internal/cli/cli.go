// Package cli implements the matterframe command-line interface.
//
// This package provides commands for inspecting scene files, applying batch
// edits with automatic layout recomputation, rendering hierarchy diagrams,
// and validating scene integrity. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - inspect: Show objects, world poses, and layout state of a scene
//   - edit: Apply a batch of operations (reparent, move, resize, layout)
//   - render: Generate DOT, SVG, or PNG hierarchy diagrams
//   - check: Validate hierarchy integrity without modifying anything
//   - tree: Browse the containment tree interactively
//   - recent: List recently edited scene files
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matterframe/matterframe/pkg/buildinfo"
	"github.com/matterframe/matterframe/pkg/cache"
	"github.com/matterframe/matterframe/pkg/engine"
	"github.com/matterframe/matterframe/pkg/snapshot"
)

const (
	// appName is the application name used for directories and display.
	appName = "matterframe"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and the on-disk
// config (falling back to defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "matterframe",
		Short:        "Matterframe edits and lays out 3D scene hierarchies",
		Long:         `Matterframe is a CLI tool for inspecting and editing 3D scene hierarchies with automatic container layout, preserving world poses across reparenting and cascading size changes upward.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	}

	// Register all subcommands
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.recentCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// openEngine loads a scene file and wraps it in an engine using the CLI's
// logger and the default placement algorithm.
func (c *CLI) openEngine(path string) (*engine.Engine, error) {
	s, err := snapshot.ReadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return engine.Wrap(s, engine.Options{Logger: c.Logger}), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/matterframe/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
