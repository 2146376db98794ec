package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucawellmeier/octoblog/internal/logfields"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output string `short:"o" name:"output" help:"Output directory (overrides output.directory)"`
	Report string `name:"report" help:"Write a JSON build report to this file"`
}

func (g *GenerateCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	out, err := resolveOutputDir(g.Output, cfg)
	if err != nil {
		return err
	}

	report, genErr := newGenerator(cfg, out).Generate(ctx)
	if g.Report != "" && report != nil {
		if err := report.WriteJSON(g.Report); err != nil {
			slog.Warn("Failed to write build report", logfields.Path(g.Report), logfields.Error(err))
		}
	}
	if genErr != nil {
		return genErr
	}
	fmt.Println(report.Summary())
	return nil
}
