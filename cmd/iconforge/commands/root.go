// Package commands assembles the iconforge CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/iconforge/internal/version"
	"github.com/arthur-debert/iconforge/pkg/logging"
	"github.com/arthur-debert/iconforge/pkg/style"
	"github.com/arthur-debert/iconforge/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "iconforge",
		Short: "An icon library build pipeline",
		Long: `iconforge turns a tree of hand-drawn SVG sources into a published icon
library: named identities, classified categories, generated components, and
a consistent metadata catalog.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newStandardizeCmd())
	rootCmd.AddCommand(newSyncStrokeCmd())
	rootCmd.AddCommand(newOptimizeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("iconforge version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

// libraryRoot resolves the --root flag, defaulting to the current directory.
func libraryRoot(root string) string {
	if root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// renderResult prints a command result through the terminal renderer.
func renderResult(cmd *cobra.Command, result *types.CommandResult) {
	renderer := style.NewTerminalRenderer()
	cmd.Println(renderer.RenderResult(result))
	if result.Stats != nil {
		cmd.Println(renderer.RenderCatalogStats(*result.Stats))
	}
}
