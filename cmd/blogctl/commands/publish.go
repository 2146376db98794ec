package commands

import (
	"context"
	"fmt"

	"github.com/lucawellmeier/octoblog/internal/publish"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct{}

func (p *PublishCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	wf := publish.NewWorkflow(cfg, publish.GitCLI{}, newGenerator(cfg, cfg.Output.Directory), ".")
	if err := wf.Publish(ctx); err != nil {
		return err
	}
	fmt.Printf("Published to %s/%s\n", cfg.Publish.Remote, cfg.Publish.PublishBranch)
	return nil
}
