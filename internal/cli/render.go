package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/drawing"
	"github.com/matzehuels/cabledraw/pkg/pipeline"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	template string // template pack id
	format   string // requested format: svg, pdf, png
	output   string // copy the drawing to this file
	inline   bool   // write the SVG to stdout instead of printing its location
	quiet    bool   // no spinner
}

// renderCommand creates the render command. The drawing goes through the
// same cache as the API: a schema rendered before is served from the store.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		template: pipeline.DefaultTemplatePackID,
		format:   pipeline.DefaultFormat,
	}

	cmd := &cobra.Command{
		Use:   "render <schema.json|schema.yaml>",
		Short: "Render a cable assembly schema to a drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", opts.template, "template pack id")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), pdf, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "copy the drawing to this file")
	cmd.Flags().BoolVar(&opts.inline, "inline", false, "write the SVG to stdout")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "no progress spinner")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := schema.ReadFile(input)
	if err != nil {
		return err
	}
	svc, err := c.newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close(context.WithoutCancel(ctx))

	prog := newProgress(c.Logger)
	var spin *Spinner
	if !opts.quiet && !opts.inline {
		spin = newSpinner(ctx, os.Stderr, "Rendering "+s.AssemblyID)
		spin.Start()
	}
	resp, err := svc.runner.Execute(ctx, pipeline.Request{
		Schema:         s,
		TemplatePackID: opts.template,
		Format:         opts.format,
		Inline:         opts.inline || opts.output != "",
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if opts.inline {
		_, err := fmt.Fprint(os.Stdout, resp.SVG)
		return err
	}

	for _, w := range resp.Warnings {
		printWarning("%s", w)
	}
	prog.done("Rendered " + s.AssemblyID)

	key := drawing.Key{AssemblyID: s.AssemblyID, Revision: resp.Revision, Format: resp.Format}
	path, err := svc.drawings.Path(key)
	if err != nil {
		return err
	}
	printSuccess("Drawing %s", StyleValue.Render(s.AssemblyID))
	printRenderStats(resp.RenderManifest.TemplatePackID, resp.Revision, resp.RenderManifest.CacheHit)
	printFile(path)
	if resp.URL != "" {
		fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleLink.Render(resp.URL))
	}

	if opts.output != "" {
		if err := writeOutput(opts.output, []byte(resp.SVG)); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
