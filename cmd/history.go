package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobscout/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.GetAppFromContext(cmd.Context())
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		history, err := application.Store.LoadHistory(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(history) == 0 {
			fmt.Println("No search history yet.")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(history) > limit {
			history = history[:limit]
		}

		fmt.Println(titleStyle.Render("Search History"))
		for _, entry := range history {
			fmt.Printf("%s  %s\n",
				valueStyle.Render(entry.CreatedAt.Format("2006-01-02 15:04")),
				describeQuery(entry.SearchQuery))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
}
