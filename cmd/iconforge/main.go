package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/iconforge/cmd/iconforge/commands"
	"github.com/arthur-debert/iconforge/pkg/style"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.NewTerminalRenderer()
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
