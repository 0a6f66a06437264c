package cmd

import (
	"github.com/spf13/cobra"

	"github.com/barysiuk/catalyst/internal/core"
)

var installCmd = &cobra.Command{
	Use:   "install <package-path>",
	Short: "Install a packaged agent into a client",
	Long: `Install the agent from a package file into an installed AI CLI,
converting it to that tool's format.

When --client is omitted, the only installed client is used, or you are
asked to pick one.`,
	Example: `  catalyst install tmp/helper-v1.0.0.json
  catalyst install helper-v1.0.0.json --client kiro --name my-helper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		inst := core.NewInstaller(d.detector, d.selector, d.logger)
		res, err := inst.Install(cmd.Context(), args[0], core.InstallOptions{
			Name:   name,
			Client: d.clientFlag(cmd),
		})
		if err != nil {
			return withChoiceHint(err, "pass --client")
		}

		printSuccess("Installed %s (v%s) to %s", res.AgentName, res.Manifest.Version, res.Client.DisplayName())
		dim.Printf("  %s\n", res.Path)
		return nil
	},
}

func init() {
	installCmd.Flags().String("client", "", "Client to install into (kiro, claude-code)")
	installCmd.Flags().String("name", "", "Install under a different agent name")
	rootCmd.AddCommand(installCmd)
}
