package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/catalyst/internal/core"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change catalyst settings",
	Long: `View and change the settings stored in ~/.catalyst/config.yaml
(or the file given with --config).

Keys: ` + strings.Join(core.ConfigKeys, ", "),
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting and its current value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := configManager(cmd)
		if err != nil {
			return err
		}
		cfg, err := cm.Load()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, key := range core.ConfigKeys {
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			if value == "" {
				value = dim.Sprint("(unset)")
			}
			fmt.Fprintf(w, "%s\t%s\n", key, value)
		}
		return w.Flush()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := configManager(cmd)
		if err != nil {
			return err
		}
		cfg, err := cm.Load()
		if err != nil {
			return err
		}

		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and write the config file. An empty value clears
default_client.`,
	Example: `  catalyst config set default_client claude-code
  catalyst config set detection.timeout 5s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := configManager(cmd)
		if err != nil {
			return err
		}
		cfg, err := cm.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		key, value := args[0], args[1]
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := cm.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		printSuccess("Set %s = %q in %s", key, value, cm.ConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := configManager(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, cm.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
