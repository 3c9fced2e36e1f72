package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobscout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.AppConfig
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", labelStyle.Render("Provider URL:"), orUnset(cfg.ProviderURL))
		fmt.Printf("%s %s\n", labelStyle.Render("Board URL:"), orUnset(cfg.BoardURL))
		fmt.Printf("%s %s\n", labelStyle.Render("Redis URL:"), orUnset(cfg.RedisURL))
		fmt.Printf("%s %d\n", labelStyle.Render("Page Size:"), cfg.PageSize)
		fmt.Printf("%s %dms / %dms\n", labelStyle.Render("Debounce (typed/discrete):"),
			cfg.SettleDelayMS, cfg.DiscreteDelayMS)
		fmt.Printf("%s %d entries, %dh dedup\n", labelStyle.Render("History:"),
			cfg.HistoryCap, cfg.HistoryDedupHrs)
		fmt.Printf("%s %s\n", labelStyle.Render("Watch Schedule:"), cfg.WatchSchedule)
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  jobscout config set --key provider_url --value https://jobs.example.com/api
  jobscout config set --key page_size --value 20
  jobscout config set --key watch_schedule --value "@every 1h"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")
		if key == "" {
			return fmt.Errorf("--key is required")
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		fmt.Printf("✓ %s updated\n", key)
		return nil
	},
}

var getConfigCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.Get(args[0]))
	},
}

func orUnset(v string) string {
	if v == "" {
		return "✗ Not configured"
	}
	return v
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)
	configCmd.AddCommand(getConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
