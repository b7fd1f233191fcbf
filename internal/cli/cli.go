// Package cli implements the perktree command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BardicNoel/perktree/pkg/buildinfo"
	"github.com/BardicNoel/perktree/pkg/cache"
	"github.com/BardicNoel/perktree/pkg/config"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "perktree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stderr  io.Writer
	v       *viper.Viper
	verbose bool
	logFile *lumberjack.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
		v:      viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "perktree lays out perk and skill trees",
		Long: `perktree computes deterministic 2D layouts for perk and skill graphs.

Records are read from JSON, TOML or YAML files. Each connected tree is placed
hierarchically with parents centered over their children, trees are packed
side by side, and overlaps are relaxed away. Cyclic trees fall back to the
records' seed grid positions instead of failing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.closeLogFile()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.String("config", "", "config file (default: ./perktree.toml, then $XDG_CONFIG_HOME/perktree/config.toml)")
	_ = c.v.BindPFlag("config", pf.Lookup("config"))

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// flagBindings maps viper keys to flag names of a single command.
type flagBindings map[string]string

// loadConfig binds the command's flags and loads the layered configuration.
// Bindings are made per command at run time because several commands expose
// flags for the same key.
func (c *CLI) loadConfig(cmd *cobra.Command, bindings flagBindings) (*config.Config, error) {
	for key, name := range bindings {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := c.v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return nil, err
	}
	c.applyLogConfig(cfg.Log)
	return cfg, nil
}

// applyLogConfig sets the level from the config unless --verbose was given,
// and tees output into a rotating file when one is configured.
func (c *CLI) applyLogConfig(lc config.LogConfig) {
	if !c.verbose {
		if level, err := log.ParseLevel(lc.Level); err == nil {
			c.SetLogLevel(level)
		}
	}
	if lc.File == "" || c.logFile != nil {
		return
	}
	c.logFile = &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAgeDays,
		Compress:   true,
	}
	c.Logger.SetOutput(io.MultiWriter(c.stderr, c.logFile))
}

func (c *CLI) closeLogFile() {
	if c.logFile == nil {
		return
	}
	_ = c.logFile.Close()
	c.logFile = nil
	c.Logger.SetOutput(c.stderr)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	var store cache.Cache = cache.NewNullCache()
	if !noCache {
		opened, err := cfg.Cache.OpenCache(ctx)
		if err != nil {
			return nil, err
		}
		store = opened
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

// stderrIsTerminal reports whether the spinner should be drawn.
func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}
