package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cabledraw/pkg/assembly"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// assembliesCommand manages the assembly store the API resolves assembly_id
// against.
func (c *CLI) assembliesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assemblies",
		Short: "Manage stored assembly schemas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "put <schema.json|schema.yaml>...",
		Short: "Store schemas under their assembly ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAssemblies(cmd.Context(), func(store assembly.Store) error {
				for _, path := range args {
					s, err := schema.ReadFile(path)
					if err != nil {
						return err
					}
					if err := store.Put(cmd.Context(), s); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					printSuccess("Stored %s", StyleValue.Render(s.AssemblyID))
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored assembly ids (file store only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withAssemblies(cmd.Context(), func(store assembly.Store) error {
				fs, ok := store.(*assembly.FileStore)
				if !ok {
					return fmt.Errorf("listing requires storage.assemblies_dir")
				}
				ids, err := fs.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No assemblies stored")
					return nil
				}
				for _, id := range ids {
					fmt.Println(id)
				}
				return nil
			})
		},
	})

	return cmd
}

// withAssemblies runs fn against the configured assembly store.
func (c *CLI) withAssemblies(ctx context.Context, fn func(assembly.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Mongo.URI == "" && cfg.Storage.AssembliesDir == "" {
		return fmt.Errorf("no assembly store configured: set mongo.uri or storage.assemblies_dir")
	}
	svc, err := c.newServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close(context.WithoutCancel(ctx))
	return fn(svc.runner.Assemblies)
}
