package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/iconforge/pkg/commands/build"
)

func newBuildCmd() *cobra.Command {
	var (
		root           string
		layout         string
		skipCollisions bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate components, records, and the catalog from the source tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := build.Build(build.Options{
				Root:           libraryRoot(root),
				Layout:         layout,
				SkipCollisions: skipCollisions,
			})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	cmd.Flags().StringVar(&layout, "layout", "", "Source layout: category or variant")
	cmd.Flags().BoolVar(&skipCollisions, "skip-collisions", false, "Skip colliding sources instead of failing")

	return cmd
}
