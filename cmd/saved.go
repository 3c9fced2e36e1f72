package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobscout/internal/app"
	"jobscout/internal/provider"
	"jobscout/pkg/models"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
	Long:  "List, replay and delete saved searches",
}

var listSavedCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.GetAppFromContext(cmd.Context())
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		saved, err := application.Store.LoadSavedSearches(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load saved searches: %w", err)
		}
		if len(saved) == 0 {
			fmt.Println("No saved searches. Save one with 'jobscout search ... --save <label>'")
			return nil
		}

		fmt.Println(titleStyle.Render("Saved Searches"))
		for _, s := range saved {
			fmt.Printf("%d. %s\n", s.ID, labelStyle.Render(s.Label))
			fmt.Printf("   %s\n", describeQuery(s.SearchQuery))
		}
		return nil
	},
}

var runSavedCmd = &cobra.Command{
	Use:   "run <id|label>",
	Short: "Replay a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application := app.GetAppFromContext(ctx)
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		saved, err := findSaved(cmd, args[0])
		if err != nil {
			return err
		}

		eng := buildEngine(application)
		defer eng.Stop()

		criteria := provider.Criteria{Query: saved.Text, Location: saved.Location}
		listings, fetchErr := application.Provider.FetchListings(ctx, criteria)
		if fetchErr != nil {
			fmt.Printf("Warning: listing fetch failed: %v\n", fetchErr)
		}
		eng.SetListings(listings)
		eng.RestoreQuery(saved.SearchQuery)
		eng.Flush()
		eng.CommitSearch(ctx)

		fmt.Println(titleStyle.Render("Saved search: " + saved.Label))
		renderPage(eng.Result())
		return nil
	},
}

var deleteSavedCmd = &cobra.Command{
	Use:   "delete <id|label>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.GetAppFromContext(cmd.Context())
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		saved, err := findSaved(cmd, args[0])
		if err != nil {
			return err
		}
		if err := application.Store.DeleteSaved(cmd.Context(), saved.ID); err != nil {
			return fmt.Errorf("failed to delete saved search: %w", err)
		}
		fmt.Printf("✓ Deleted saved search: %s\n", saved.Label)
		return nil
	},
}

// findSaved resolves a saved search by numeric id or label.
func findSaved(cmd *cobra.Command, ref string) (models.SavedSearch, error) {
	application := app.GetAppFromContext(cmd.Context())
	saved, err := application.Store.LoadSavedSearches(cmd.Context())
	if err != nil {
		return models.SavedSearch{}, fmt.Errorf("failed to load saved searches: %w", err)
	}

	id, idErr := strconv.Atoi(ref)
	for _, s := range saved {
		if (idErr == nil && s.ID == id) || strings.EqualFold(s.Label, ref) {
			return s, nil
		}
	}
	return models.SavedSearch{}, fmt.Errorf("%w: %s", app.ErrNoSavedSearch, ref)
}

// describeQuery summarizes a query snapshot in one line.
func describeQuery(q models.SearchQuery) string {
	var parts []string
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", q.Text))
	}
	if q.Location != "" {
		parts = append(parts, "in "+q.Location)
	}
	activeFacets := 0
	f := q.Filters
	for _, n := range []int{len(f.JobTypes), len(f.ExperienceLevels), len(f.Industries),
		len(f.Skills), len(f.Regions), len(f.VisaStatuses), len(f.Benefits)} {
		activeFacets += n
	}
	if f.RemoteOnly {
		activeFacets++
	}
	if activeFacets > 0 {
		parts = append(parts, fmt.Sprintf("%d facet values", activeFacets))
	}
	if len(parts) == 0 {
		return "all listings"
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(listSavedCmd)
	savedCmd.AddCommand(runSavedCmd)
	savedCmd.AddCommand(deleteSavedCmd)
}
