// Package metrics exposes progress as Prometheus gauges for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/models"
	"github.com/julianstephens/cortisol/internal/utils"
)

const namespace = "cortisol"

var phases = []constants.Phase{constants.PhaseStabilize, constants.PhaseRebalance, constants.PhaseRebuild}

// Collector holds the progress gauges on a private registry
type Collector struct {
	registry *prometheus.Registry

	xpTotal         prometheus.Gauge
	level           prometheus.Gauge
	xpToNext        prometheus.Gauge
	progressPercent prometheus.Gauge
	entries         prometheus.Gauge
	phase           *prometheus.GaugeVec
	lastScore       prometheus.Gauge
	lastXP          prometheus.Gauge
	lastRecovery    prometheus.Gauge
	lastEntryTime   prometheus.Gauge
}

// New creates a collector with every gauge registered
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		xpTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "xp_total",
			Help:      "Total XP earned across the whole history.",
		}),
		level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "level",
			Help:      "Current level.",
		}),
		xpToNext: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "xp_to_next_level",
			Help:      "XP still needed to reach the next level.",
		}),
		progressPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "level_progress_percent",
			Help:      "Progress through the current level, 0-100.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "entries",
			Help:      "Number of recorded days.",
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "phase",
			Help:      "1 for the current phase, 0 otherwise.",
		}, []string{"phase"}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "last_entry",
			Name:      "score",
			Help:      "Score of the most recent entry.",
		}),
		lastXP: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "last_entry",
			Name:      "xp",
			Help:      "XP of the most recent entry.",
		}),
		lastRecovery: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "last_entry",
			Name:      "recovery_percent",
			Help:      "Recovery percentage of the most recent entry.",
		}),
		lastEntryTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "last_entry",
			Name:      "date_timestamp_seconds",
			Help:      "Unix timestamp (UTC midnight) of the most recent entry's date.",
		}),
	}

	c.registry.MustRegister(
		c.xpTotal, c.level, c.xpToNext, c.progressPercent, c.entries, c.phase,
		c.lastScore, c.lastXP, c.lastRecovery, c.lastEntryTime,
	)
	return c
}

// Registry returns the registry the gauges live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Record sets every gauge from the progress summary and the latest entry
func (c *Collector) Record(progress models.Progress, history models.History) {
	c.xpTotal.Set(float64(progress.XPTotal))
	c.level.Set(float64(progress.Level))
	c.xpToNext.Set(float64(progress.XPToNext))
	c.progressPercent.Set(float64(progress.ProgressPercent))
	c.entries.Set(float64(progress.Entries))

	for _, p := range phases {
		v := 0.0
		if p == progress.Phase {
			v = 1
		}
		c.phase.WithLabelValues(string(p)).Set(v)
	}

	last, ok := history.Last()
	if !ok {
		c.lastScore.Set(0)
		c.lastXP.Set(0)
		c.lastRecovery.Set(0)
		c.lastEntryTime.Set(0)
		return
	}
	c.lastScore.Set(float64(last.Score))
	c.lastXP.Set(float64(last.XP))
	c.lastRecovery.Set(float64(last.Recovery))
	if t, err := utils.ParseDate(last.Date); err == nil {
		c.lastEntryTime.Set(float64(t.Unix()))
	} else {
		c.lastEntryTime.Set(0)
	}
}

// WriteTextfile writes the gauges in the text exposition format.
// The parent directory is created if needed.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
