package commands

import (
	"context"
	"fmt"
	"net"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/lucawellmeier/octoblog/internal/metrics"
	"github.com/lucawellmeier/octoblog/internal/preview"
)

// ServeCmd starts a local preview server.
type ServeCmd struct {
	Host      string `name:"host" default:"127.0.0.1" help:"Interface to listen on"`
	Port      int    `short:"p" name:"port" default:"8080" help:"Preview server port"`
	Output    string `short:"o" name:"output" help:"Output directory (overrides output.directory)"`
	NoMetrics bool   `name:"no-metrics" help:"Do not expose /metrics"`
}

func (s *ServeCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	out, err := resolveOutputDir(s.Output, cfg)
	if err != nil {
		return err
	}

	gen := newGenerator(cfg, out)
	var reg *prom.Registry
	if !s.NoMetrics {
		reg = prom.NewRegistry()
		gen.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	addr := s.addr()
	fmt.Printf("Serving %s on http://%s/\n", out, addr)
	return preview.New(cfg, gen, out, addr, reg).Run(ctx)
}

func (s *ServeCmd) addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
