package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// templatesCommand lists the template packs visible to the loader.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template-packs"},
		Short:   "List available template packs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			loader := templatepack.NewDefaultLoader(nil, cfg.Storage.TemplatePacksDir)
			loader.Logger = c.Logger
			infos, err := loader.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No template packs found")
				return nil
			}

			fmt.Println(StyleTitle.Render("Template packs"))
			for _, info := range infos {
				printKeyValue(info.ID, fmt.Sprintf("%s %s", info.Paper, StyleDim.Render("v"+info.Version)))
				if info.Name != "" {
					printDetail("%s", info.Name)
				}
			}
			return nil
		},
	}
}
