package commands

import (
	"context"

	"github.com/lucawellmeier/octoblog/internal/publish"
)

// SaveCmd implements the 'save' command.
type SaveCmd struct{}

func (s *SaveCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	wf := publish.NewWorkflow(cfg, publish.GitCLI{}, newGenerator(cfg, cfg.Output.Directory), ".")
	return wf.Save(ctx)
}
