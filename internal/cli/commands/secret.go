package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/domain/config"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage plugin options kept in the OS credential store",
}

var secretSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store an option value; reads it from stdin when omitted",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := checkOptionKey(key); err != nil {
			return err
		}

		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read value: %w", err)
			}
			value = strings.TrimSpace(line)
		}
		if value == "" {
			return fmt.Errorf("empty value for %s", key)
		}

		if err := secrets.Set(key, value); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", key)
		return nil
	},
}

var secretRemoveCmd = &cobra.Command{
	Use:     "rm <key>",
	Aliases: []string{"delete"},
	Short:   "Remove a stored option value",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOptionKey(args[0]); err != nil {
			return err
		}
		if err := secrets.Delete(args[0]); err != nil {
			return fmt.Errorf("remove %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var secretListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show which option keys have a stored value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stored := config.OptionsFromSecrets(secrets)
		w := cmd.OutOrStdout()
		for _, key := range config.OptionKeys() {
			if _, ok := stored[key]; ok {
				color.New(color.FgGreen).Fprintf(w, "%-20s stored\n", key)
			} else {
				fmt.Fprintf(w, "%-20s -\n", key)
			}
		}
		return nil
	},
}

func checkOptionKey(key string) error {
	if !config.IsOptionKey(key) {
		return fmt.Errorf("unknown option %q (known: %s)", key, strings.Join(config.OptionKeys(), ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(secretCmd)
	secretCmd.AddCommand(secretSetCmd, secretRemoveCmd, secretListCmd)
}
