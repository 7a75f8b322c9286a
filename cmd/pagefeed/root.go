package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pagefeed.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagefeed",
		Short: "Split web pages into feeds of article links",
		Long: `pagefeed segments a web page into labeled groups of article links.

Three strategies look at the page independently: links under headings,
links sharing a container and path prefix, and links sharing a URL path
pattern. In auto mode their groups are merged by label. Pages that show no
structure in their static markup are rendered in a headless browser once.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .pagefeed in current or home directory)")

	cmd.AddCommand(NewSegmentCmd())
	cmd.AddCommand(NewCompareCmd())
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
