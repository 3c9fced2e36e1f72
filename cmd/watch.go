package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"jobscout/internal/app"
	"jobscout/internal/engine"
	"jobscout/internal/provider"
	"jobscout/pkg/models"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch saved searches for new matches",
	Long:  "Re-runs every saved search on a schedule and reports listings that were not in the previous run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application := app.GetAppFromContext(ctx)
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		schedule, _ := cmd.Flags().GetString("schedule")
		if schedule == "" {
			schedule = application.Config.WatchSchedule
		}

		w := &watcher{app: application, seen: map[int]map[int]bool{}}

		// A sweep can outlast a short schedule (each fetch may be a slow
		// scrape), so ticks that land mid-sweep are skipped, not stacked.
		c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
		if _, err := c.AddFunc(schedule, func() { w.runAll(ctx) }); err != nil {
			return fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
		}

		fmt.Printf("Watching saved searches (%s). Ctrl-C to stop.\n", schedule)
		w.runAll(ctx)
		c.Start()
		defer c.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

// watcher tracks, per saved search, the listing ids seen on the last run so
// only genuinely new matches are reported.
type watcher struct {
	app  *app.App
	mu   sync.Mutex
	seen map[int]map[int]bool
}

func (w *watcher) runAll(ctx context.Context) {
	saved, err := w.app.Store.LoadSavedSearches(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: saved searches unavailable: %v\n", err)
		return
	}
	if len(saved) == 0 {
		fmt.Println("No saved searches to watch.")
		return
	}
	for _, s := range saved {
		w.runOne(ctx, s)
	}
}

func (w *watcher) runOne(ctx context.Context, saved models.SavedSearch) {
	criteria := provider.Criteria{Query: saved.Text, Location: saved.Location}
	listings, err := w.app.Provider.FetchListings(ctx, criteria)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: fetch for %q failed: %v\n", saved.Label, err)
		return
	}

	matches := engine.Filter(listings, restoredFilters(saved.SearchQuery))
	fresh, first := w.record(saved.ID, matches)

	switch {
	case first:
		fmt.Printf("%s: %d matches (baseline)\n", saved.Label, len(matches))
	case len(fresh) == 0:
		fmt.Printf("%s: no new matches\n", saved.Label)
	default:
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %d new matches", saved.Label, len(fresh))))
		for _, l := range fresh {
			fmt.Printf("  • %s — %s (%s)\n", l.Title, l.Organization, formatLocation(l))
		}
	}
}

// record replaces the seen set for a saved search and returns the matches
// absent from the previous run. The first run establishes a baseline and
// reports nothing.
func (w *watcher) record(savedID int, matches []models.Listing) (fresh []models.Listing, first bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prior := w.seen[savedID]
	first = prior == nil
	current := make(map[int]bool, len(matches))
	for _, l := range matches {
		current[l.ID] = true
		if !first && !prior[l.ID] {
			fresh = append(fresh, l)
		}
	}
	w.seen[savedID] = current
	return fresh, first
}

func restoredFilters(q models.SearchQuery) models.FilterState {
	f := q.Filters
	f.Text = q.Text
	f.Location = q.Location
	return f
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("schedule", "", "Cron expression or @every duration (overrides config)")
}
