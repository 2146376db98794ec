// Package commands implements the blogctl subcommands.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lucawellmeier/octoblog/internal/config"
	"github.com/lucawellmeier/octoblog/internal/site"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" enum:"text,json" default:"text" help:"Log output format (text or json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Create a configuration file and a starter site"`
	Generate GenerateCmd `cmd:"" help:"Render the site into the output directory"`
	Save     SaveCmd     `cmd:"" help:"Commit and push the content branch"`
	Publish  PublishCmd  `cmd:"" help:"Generate, save and deploy the site to the publish branch"`
	Serve    ServeCmd    `cmd:"" help:"Preview the site locally, rebuilding on change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig reads the configuration named by the global flag.
func (c *CLI) loadConfig() (*config.Config, error) {
	slog.Debug("Loading configuration", "path", c.Config)
	return config.Load(c.Config)
}

// resolveOutputDir prefers the flag over the configured directory.
func resolveOutputDir(flag string, cfg *config.Config) (string, error) {
	if flag == "" {
		return cfg.Output.Directory, nil
	}
	if err := config.ValidateOutputDir(flag, cfg); err != nil {
		return "", err
	}
	return flag, nil
}

// newGenerator wires a generator for the current working tree.
func newGenerator(cfg *config.Config, outputDir string) *site.Generator {
	return site.NewGenerator(cfg, outputDir)
}
