package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List supported clients and whether they are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		installed := map[string]bool{}
		for _, c := range d.detector.Available(cmd.Context()) {
			installed[c.Name()] = true
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCLIENT\tSTATUS\tAGENTS DIR")
		for _, c := range d.detector.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name(), c.DisplayName(), yesNo(installed[c.Name()]), c.AgentsDir())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(clientsCmd)
}
