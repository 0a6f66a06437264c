package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barysiuk/catalyst/internal/core/client"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List agents in installed clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		var clients []client.Client
		if name := d.clientFlag(cmd); name != "" {
			c, err := d.detector.ByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			clients = []client.Client{c}
		} else {
			clients = d.detector.Available(cmd.Context())
		}
		if len(clients) == 0 {
			return client.ErrNoCompatibleClient
		}

		for i, c := range clients {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			names, err := c.ListAgents()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s (%d):\n", c.DisplayName(), len(names))
			if len(names) == 0 {
				dim.Println("  (none)")
				continue
			}
			for _, n := range names {
				fmt.Fprintf(os.Stdout, "  %s\n", n)
			}
		}
		return nil
	},
}

func init() {
	agentsCmd.Flags().String("client", "", "Only list agents of this client")
	rootCmd.AddCommand(agentsCmd)
}
