package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend"
	"github.com/gogpu/framegraph/backend/null"
	"github.com/gogpu/framegraph/internal/graphdesc"
)

type runFlags struct {
	frames  int
	backend string
	metrics bool
}

func newRunCommand(flags *globalFlags) *cobra.Command {
	rf := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Execute a frame description for a number of frames",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrames(cmd.OutOrStdout(), args[0], flags, rf)
		},
	}
	cmd.Flags().IntVar(&rf.frames, "frames", 1, "number of frames to execute")
	cmd.Flags().StringVar(&rf.backend, "backend", "", "backend name (default: best available)")
	cmd.Flags().BoolVar(&rf.metrics, "metrics", false, "print collected metrics after the run")
	return cmd
}

func runFrames(w io.Writer, path string, flags *globalFlags, rf *runFlags) error {
	if rf.frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", rf.frames)
	}
	desc, err := graphdesc.ParseFile(path, flags.screen())
	if err != nil {
		return err
	}

	dev, err := openDevice(rf.backend)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := framegraph.NewGraphMetrics()
	if err := metrics.Register(registry); err != nil {
		return err
	}
	cfg := framegraph.DefaultCacheConfig()
	cfg.Metrics = metrics
	g := framegraph.New(
		framegraph.WithCulling(flags.cull),
		framegraph.WithMetrics(metrics),
		framegraph.WithCache(framegraph.NewTransientResourceCache(cfg)),
	)
	defer g.Cache().Destroy(dev)

	opts := graphdesc.Options{Commands: recordCommands}
	for frame := 0; frame < rf.frames; frame++ {
		if _, err := desc.Declare(g, opts); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if err := g.Compile(); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if frame == 0 {
			printPlan(w, g)
		}
		if err := g.Execute(dev); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}

	stats := g.Cache().Stats()
	fmt.Fprintln(w, heading("Frames:"), rf.frames)
	fmt.Fprintf(w, "%s %d pooled, %d hits, %d misses (%.0f%% hit rate)\n",
		heading("Cache:"), stats.Len, stats.Hits, stats.Misses, stats.HitRate*100)
	if nd, ok := dev.(*null.Device); ok {
		s := nd.Stats()
		fmt.Fprintf(w, "%s %d created, %d live, %d command buffers in %d submits\n",
			heading("Device:"), s.Created, s.Live, s.Submitted, s.Submits)
	}

	if rf.metrics {
		families, err := registry.Gather()
		if err != nil {
			return err
		}
		printMetrics(w, families)
	}
	return nil
}

func openDevice(name string) (framegraph.Device, error) {
	if name == "" {
		return backend.Default()
	}
	return backend.Get(name)
}

// recordCommands gives every pass one command that records into null
// encoders.
func recordCommands(graphdesc.Pass) []framegraph.PassCommand {
	return []framegraph.PassCommand{
		framegraph.PassCommandFunc(func(pc *framegraph.PassContext) error {
			if enc, ok := pc.Encoder().(*null.Encoder); ok {
				enc.Record()
			}
			return nil
		}),
	}
}

func printMetrics(w io.Writer, families []*dto.MetricFamily) {
	fmt.Fprintln(w, heading("Metrics:"))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + labels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "  %s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "  %s count=%d sum=%gs\n", name, h.GetSampleCount(), h.GetSampleSum())
			default:
				fmt.Fprintf(w, "  %s %s\n", name, dim("(%s)", mf.GetType()))
			}
		}
	}
}

func labels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, lp := range pairs {
		parts[i] = fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
