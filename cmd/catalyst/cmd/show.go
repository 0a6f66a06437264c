package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/barysiuk/catalyst/internal/core"
)

var showCmd = &cobra.Command{
	Use:   "show <package-path>",
	Short: "Show the contents of a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := core.ReadManifest(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Name:        %s\n", m.Name)
		fmt.Fprintf(os.Stdout, "Version:     %s\n", m.Version)
		if m.Description != "" {
			fmt.Fprintf(os.Stdout, "Description: %s\n", m.Description)
		}
		fmt.Fprintf(os.Stdout, "Created:     %s\n", m.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		if m.Agent.Model != "" {
			fmt.Fprintf(os.Stdout, "Model:       %s\n", m.Agent.Model)
		}
		if len(m.Agent.Tools) > 0 {
			fmt.Fprintf(os.Stdout, "Tools:       %s\n", strings.Join(m.Agent.Tools, ", "))
		}
		if len(m.Agent.Extra) > 0 {
			fmt.Fprintf(os.Stdout, "Extra keys:  %d (kept by Kiro CLI only)\n", len(m.Agent.Extra))
		}

		if m.Agent.Prompt == "" {
			return nil
		}
		fmt.Fprintln(os.Stdout)

		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Fprintln(os.Stdout, m.Agent.Prompt)
			return nil
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}
		out, err := r.Render(m.Agent.Prompt)
		if err != nil {
			return fmt.Errorf("rendering prompt: %w", err)
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the prompt without Markdown rendering")
	rootCmd.AddCommand(showCmd)
}
