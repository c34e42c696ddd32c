package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/iconforge/pkg/commands/remove"
	"github.com/arthur-debert/iconforge/pkg/commands/rename"
)

func newRenameCmd() *cobra.Command {
	var (
		root     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "rename <old-id> <new-id>",
		Short: "Rename an icon identity, moving assets and metadata",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rename.Rename(rename.Options{
				Root:     libraryRoot(root),
				OldID:    args[0],
				NewID:    args[1],
				Category: category,
			})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	cmd.Flags().StringVar(&category, "category", "", "Category holding the icon's asset files")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	var (
		root     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an icon's assets, sidecars, and record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := remove.Remove(remove.Options{
				Root:     libraryRoot(root),
				ID:       args[0],
				Category: category,
			})
			if err != nil {
				return err
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (defaults to the current directory)")
	cmd.Flags().StringVar(&category, "category", "", "Category holding the icon's asset files")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
