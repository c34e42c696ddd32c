package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/iconforge/pkg/commands/upload"
)

func newUploadCmd() *cobra.Command {
	var (
		root      string
		variant   string
		category  string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file.svg>...",
		Short: "Import SVG files into the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := upload.Upload(upload.Options{
				Root:      libraryRoot(root),
				Variant:   variant,
				Category:  category,
				Overwrite: overwrite,
				Files:     args,
			})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	cmd.Flags().StringVar(&variant, "variant", "outline", "Target variant for the uploaded files")
	cmd.Flags().StringVar(&category, "category", "", "Force a category (defaults to keyword classification)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing assets with the same variant and name")

	return cmd
}
