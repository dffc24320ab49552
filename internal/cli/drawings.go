package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/drawing"
)

// drawingsCommand creates the drawing store management command.
func (c *CLI) drawingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drawings",
		Short: "Manage the drawing store",
	}

	cmd.AddCommand(c.drawingsPathCommand())
	cmd.AddCommand(c.drawingsClearCommand())

	return cmd
}

// drawingsPathCommand creates the "drawings path" subcommand.
func (c *CLI) drawingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the drawing store directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openDrawings()
			if err != nil {
				return err
			}
			fmt.Println(store.Root())
			return nil
		},
	}
}

// drawingsClearCommand creates the "drawings clear" subcommand.
func (c *CLI) drawingsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored drawing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openDrawings()
			if err != nil {
				return err
			}
			n, err := store.Clear()
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Drawing store is empty")
				return nil
			}
			printSuccess("Cleared %d drawings", n)
			printDetail("Directory: %s", store.Root())
			return nil
		},
	}
}

func (c *CLI) openDrawings() (*drawing.FileStore, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return drawing.NewFileStore(cfg.Storage.DrawingsDir)
}
