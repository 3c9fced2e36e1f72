package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobscout/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Faceted job-search CLI",
	Long: `Jobscout fetches job listings and lets you narrow them with faceted
filters: free text, location, job type, salary range, skills, industry and
more. Searches can be saved, replayed, shared and watched for new matches.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if appInstance := app.GetAppFromContext(ctx); appInstance != nil {
		appInstance.Close()
	}
}
