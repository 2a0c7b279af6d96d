package system

import (
	"path/filepath"

	"github.com/julianstephens/cortisol/internal/cli"
	"github.com/julianstephens/cortisol/internal/metrics"
)

type MetricsCmd struct {
	Textfile string `help:"Output file for node_exporter's textfile collector (default <config dir>/metrics/cortisol.prom)." type:"path"`
}

func (c *MetricsCmd) Run(ctx *cli.Context) error {
	h, err := ctx.History().Load()
	if err != nil {
		return err
	}

	path := c.Textfile
	if path == "" {
		path = filepath.Join(ctx.ConfigDir, "metrics", "cortisol.prom")
	}

	collector := metrics.New()
	collector.Record(ctx.GetEngine().ComputeProgress(h), h)
	if err := collector.WriteTextfile(path); err != nil {
		return err
	}

	ctx.Printf("✓ Metrics written to %s\n", path)
	return nil
}
