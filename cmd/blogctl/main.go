package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/lucawellmeier/octoblog/cmd/blogctl/commands"
	"github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("blogctl"),
		kong.Description("Generate, preview and publish a markdown blog."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	// AfterApply has installed the configured logger by now.
	logger := slog.Default()
	if err := parser.Run(&commands.Global{Logger: logger}, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
	}
}
