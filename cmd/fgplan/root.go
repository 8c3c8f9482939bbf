package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/internal/graphdesc"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	width  uint32
	height uint32
	cull   bool
	debug  bool
}

func newRootCommand(out io.Writer) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "fgplan",
		Short:         "Compile and run HCL frame descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.debug {
				framegraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	cmd.SetOut(out)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().Uint32Var(&flags.width, "width", 1920, "screen width exposed as screen.width")
	cmd.PersistentFlags().Uint32Var(&flags.height, "height", 1080, "screen height exposed as screen.height")
	cmd.PersistentFlags().BoolVar(&flags.cull, "cull", false, "cull passes that contribute to no side effect")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log framegraph debug output to stderr")

	cmd.AddCommand(
		newPlanCommand(flags),
		newRunCommand(flags),
	)
	return cmd
}

func (f *globalFlags) screen() graphdesc.Screen {
	return graphdesc.Screen{Width: f.width, Height: f.height}
}

// exactArgs returns an error if there is not the exact number of args.
func exactArgs(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == number {
			return nil
		}
		_ = cmd.Usage()
		return fmt.Errorf("expected %d arguments, got %d", number, len(args))
	}
}

func heading(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

func dim(format string, a ...any) string {
	return color.New(color.Faint).Sprintf(format, a...)
}
