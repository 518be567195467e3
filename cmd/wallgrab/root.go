// Package main provides the entry point for the wallgrab CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wallgrab.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallgrab",
		Short: "Download Bing daily wallpapers from the community archive",
		Long: `Wallgrab downloads Bing daily wallpapers from the community archive.

The archive builds its pages with JavaScript, so wallgrab renders them in
a headless browser, follows each detail page to the original-resolution
image, and downloads everything that is not already on disk. Re-running
the same month resumes where the last run stopped.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
