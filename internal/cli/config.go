package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printKeyValue("listen", cfg.Server.Addr)
			printKeyValue("worker", cfg.Server.WorkerAddr)
			printKeyValue("drawings", cfg.Storage.DrawingsDir)
			printKeyValue("templates", orNone(cfg.Storage.TemplatePacksDir))
			printKeyValue("assemblies", orNone(cfg.Storage.AssembliesDir))
			printKeyValue("renderer", orDefault(cfg.Renderer.ServiceURL, "local"))
			printKeyValue("redis", orNone(cfg.Redis.Addr))
			printKeyValue("mongo", orNone(cfg.Mongo.URI))
			printKeyValue("log level", cfg.Log.Level)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.configPath)
			}
			if err := config.Default().Save(c.configPath); err != nil {
				return err
			}
			printSuccess("Wrote default configuration")
			printFile(c.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orNone(v string) string {
	return orDefault(v, StyleDim.Render("(none)"))
}
