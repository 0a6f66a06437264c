package cmd

import (
	"github.com/spf13/cobra"

	"github.com/barysiuk/catalyst/internal/core"
)

var publishCmd = &cobra.Command{
	Use:   "publish [agent-name]",
	Short: "Package an agent from an installed client",
	Long: `Read an agent from an installed AI CLI and write it as a package file
named <name>-v<version>.json in the output directory.

When --client is omitted and several clients are installed, you are asked
to pick one. When the agent name is omitted and the client has several
agents, you are asked to pick one.`,
	Example: `  catalyst publish helper
  catalyst publish helper --client claude-code --version 1.2.0
  catalyst publish --output dist`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		outputDir, _ := cmd.Flags().GetString("output")
		if outputDir == "" {
			outputDir = d.config.OutputDir
		}
		version, _ := cmd.Flags().GetString("version")
		if version == "" {
			version = d.config.PackageVersion
		}

		var agentName string
		if len(args) > 0 {
			agentName = args[0]
		}

		pub := core.NewPublisher(d.detector, core.NewPackager(outputDir, version), d.selector, d.logger)
		res, err := pub.Publish(cmd.Context(), agentName, core.PublishOptions{
			Client: d.clientFlag(cmd),
		})
		if err != nil {
			return withChoiceHint(err, "pass --client and the agent name")
		}

		printSuccess("Published %s from %s", res.Agent.Name, res.Client.DisplayName())
		dim.Printf("  %s\n", res.Path)
		return nil
	},
}

func init() {
	publishCmd.Flags().String("client", "", "Client to read the agent from (kiro, claude-code)")
	publishCmd.Flags().StringP("output", "o", "", "Output directory for the package (default from config, \"tmp\")")
	publishCmd.Flags().String("version", "", "Package version (default from config, \"1.0.0\")")
	rootCmd.AddCommand(publishCmd)
}
