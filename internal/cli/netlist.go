package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/pipeline"
	"github.com/matzehuels/cabledraw/pkg/render/netlist"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// netlistOpts holds the command-line flags for the netlist command.
type netlistOpts struct {
	output string
	dot    bool
	opts   netlist.Options
}

// netlistCommand creates the netlist command, a Graphviz view of which pin
// lands on which pin.
func (c *CLI) netlistCommand() *cobra.Command {
	var opts netlistOpts

	cmd := &cobra.Command{
		Use:   "netlist <schema.json|schema.yaml>",
		Short: "Draw the pin-to-pin netlist of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNetlist(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "emit DOT source instead of SVG")
	cmd.Flags().BoolVar(&opts.opts.Detailed, "detailed", false, "label edges with conductor color and shield")
	cmd.Flags().BoolVar(&opts.opts.ShowUnused, "unused", false, "show connector positions without a net")

	return cmd
}

func (c *CLI) runNetlist(ctx context.Context, input string, opts netlistOpts) error {
	s, err := schema.ReadFile(input)
	if err != nil {
		return err
	}
	d, err := dsl.Mapper{Logger: c.Logger}.Map(s, pipeline.DefaultTemplatePackID)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Mapped %s: %d nets", s.AssemblyID, len(d.Nets))

	out := []byte(netlist.ToDOT(d, opts.opts))
	if !opts.dot {
		if out, err = netlist.RenderSVG(ctx, string(out)); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := writeOutput(opts.output, out); err != nil {
		return err
	}
	printSuccess("Netlist %s", StyleValue.Render(s.AssemblyID))
	printFile(opts.output)
	return nil
}

