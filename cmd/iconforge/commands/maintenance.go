package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/iconforge/pkg/commands/migrate"
	"github.com/arthur-debert/iconforge/pkg/commands/optimize"
	"github.com/arthur-debert/iconforge/pkg/commands/standardize"
	"github.com/arthur-debert/iconforge/pkg/commands/syncstroke"
)

func newStandardizeCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "standardize",
		Short: "Rename source files to the canonical <identity>-<NN>.svg shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := standardize.Standardize(standardize.Options{Root: libraryRoot(root)})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	return cmd
}

func newSyncStrokeCmd() *cobra.Command {
	var (
		root string
		fix  bool
	)

	cmd := &cobra.Command{
		Use:   "syncstroke",
		Short: "Derive missing stroke-weight variants from their siblings",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := syncstroke.SyncStroke(syncstroke.Options{
				Root: libraryRoot(root),
				Fix:  fix,
			})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	cmd.Flags().BoolVar(&fix, "fix", false, "Repair drifted stroke-widths instead of generating files")
	return cmd
}

func newOptimizeCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Normalize every SVG source in the tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := optimize.Optimize(optimize.Options{Root: libraryRoot(root)})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert a variant-first tree to the category-first layout",
		Long: `Convert a legacy variant-first tree (icons/<variant>/<name>.svg) to the
canonical category-first layout. The migration runs once and is not
reversible; it refuses to start when any target file already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := migrate.Migrate(migrate.Options{Root: libraryRoot(root)})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	return cmd
}
