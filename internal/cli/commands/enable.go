package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/domain/config"
	"github.com/mcp-assist/customtools/internal/domain/plugins"
)

var enableCmd = &cobra.Command{
	Use:   "enable <plugin>...",
	Short: "Add plugins to enabled_tools in the config file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editEnabled(cmd, args, func(cfg *config.Config, id string) bool {
			if cfg.Enabled(id) {
				return false
			}
			cfg.EnabledTools = append(cfg.EnabledTools, id)
			return true
		})
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <plugin>...",
	Short: "Remove plugins from enabled_tools in the config file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editEnabled(cmd, args, func(cfg *config.Config, id string) bool {
			kept := cfg.EnabledTools[:0]
			for _, t := range cfg.EnabledTools {
				if t != id {
					kept = append(kept, t)
				}
			}
			changed := len(kept) != len(cfg.EnabledTools)
			cfg.EnabledTools = kept
			return changed
		})
	},
}

func editEnabled(cmd *cobra.Command, ids []string, apply func(cfg *config.Config, id string) bool) error {
	known := plugins.Factories()
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("unknown plugin %q (available: %s)", id, strings.Join(pluginIDs(), ", "))
		}
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	store := config.NewStore(path)
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	changed := false
	for _, id := range ids {
		if apply(&cfg, id) {
			changed = true
		}
	}
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
		return nil
	}
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "enabled_tools: [%s]\n", strings.Join(cfg.EnabledTools, ", "))
	return nil
}

func pluginIDs() []string {
	ids := make([]string, 0)
	for id := range plugins.Factories() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func init() {
	rootCmd.AddCommand(enableCmd, disableCmd)
}
