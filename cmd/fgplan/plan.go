package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/internal/graphdesc"
)

func newPlanCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan FILE",
		Short: "Compile a frame description and print the execution plan",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := graphdesc.ParseFile(args[0], flags.screen())
			if err != nil {
				return err
			}

			g := framegraph.New(framegraph.WithCulling(flags.cull))
			if _, err := desc.Declare(g, graphdesc.Options{}); err != nil {
				return err
			}
			if err := g.Compile(); err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

// printPlan writes the compiled plan of g. It must run before Execute,
// which resets the graph.
func printPlan(w io.Writer, g *framegraph.FrameGraph) {
	plan := g.Compiled()
	if plan == nil {
		fmt.Fprintln(w, dim("empty frame"))
		return
	}

	fmt.Fprintln(w, heading("Plan:"), len(plan.Passes()), "passes,", g.ResourceCount(), "resources")
	for i, dp := range plan.Passes() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, dp.Name())
		if req := resourceNames(g, dp.Requests()); req != "" {
			fmt.Fprintf(w, "       acquire %s\n", req)
		}
		if rel := resourceNames(g, dp.Releases()); rel != "" {
			fmt.Fprintf(w, "       release %s\n", rel)
		}
	}

	if culled := plan.Culled(); len(culled) > 0 {
		names := make([]string, len(culled))
		for i, idx := range culled {
			names[i] = g.PassNode(idx).Name()
		}
		fmt.Fprintln(w, heading("Culled:"), dim("%s", strings.Join(names, ", ")))
	}
}

func resourceNames(g *framegraph.FrameGraph, idxs []framegraph.ResourceIndex) string {
	names := make([]string, len(idxs))
	for i, idx := range idxs {
		node := g.ResourceNode(idx)
		names[i] = node.Name()
		if node.Resource().IsImported() {
			names[i] += dim(" (imported)")
		}
	}
	return strings.Join(names, ", ")
}
