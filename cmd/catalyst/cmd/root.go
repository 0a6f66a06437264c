package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "catalyst",
	Short: "Move AI agents between Kiro CLI and Claude Code",
	Long: `Catalyst converts agent definitions between AI assistant CLIs and packages
them as versioned files you can share.

Publish an agent from one tool into a package, then install that package
into any supported tool - the format is converted for you.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("catalyst %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostic details to stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.catalyst/config.yaml)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
