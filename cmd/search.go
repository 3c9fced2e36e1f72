package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobscout/internal/app"
	"jobscout/internal/engine"
	"jobscout/internal/provider"
	"jobscout/pkg/models"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and filter job listings",
	Long:  "Fetch listings, apply faceted filters, and print a ranked page of results",
	Example: `  jobscout search --query "engineer" --location dubai
  jobscout search --query backend --type full-time --salary-min 20000 --salary-max 40000
  jobscout search --skill React --skill Go --sort salaryDesc --page 2
  jobscout search --query designer --save "design-roles"
  jobscout search --from-share "q=engineer&remote=1&page=2"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application := app.GetAppFromContext(ctx)
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetString("location")
		fromShare, _ := cmd.Flags().GetString("from-share")

		eng := buildEngine(application)
		defer eng.Stop()
		eng.LoadPersisted(ctx)

		// A shared representation is restored before the first recompute.
		if fromShare != "" {
			values, err := url.ParseQuery(fromShare)
			if err != nil {
				return fmt.Errorf("invalid shared state: %w", err)
			}
			eng.ApplyShare(values)
			f := eng.Filters().Get()
			query, location = f.Text, f.Location
		}

		criteria := provider.Criteria{Query: query, Location: location}
		listings, err := application.Provider.FetchListings(ctx, criteria)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: listing fetch failed: %v\n", err)
		}
		eng.SetListings(listings)

		if fromShare == "" {
			applySearchFlags(cmd, eng, query, location)
		}
		if sortKey, _ := cmd.Flags().GetString("sort"); sortKey != "" {
			eng.SetSort(engine.SortKey(sortKey))
		}
		if page, _ := cmd.Flags().GetInt("page"); page > 1 {
			eng.SetPage(page)
		}

		eng.Flush()
		eng.CommitSearch(ctx)

		result := eng.Result()
		renderPage(result)
		for _, notice := range eng.Notices() {
			fmt.Println(noticeStyle.Render("! " + notice))
		}

		if share, _ := cmd.Flags().GetBool("share"); share {
			fmt.Printf("\n%s %s\n", labelStyle.Render("Share:"), eng.EncodeShare().Encode())
		}
		if label, _ := cmd.Flags().GetString("save"); label != "" {
			if _, err := eng.SaveSearch(ctx, label); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save search: %v\n", err)
			} else {
				fmt.Printf("\n✓ Saved search as: %s\n", label)
			}
		}
		return nil
	},
}

// applySearchFlags funnels every facet flag through the filter store.
func applySearchFlags(cmd *cobra.Command, eng *engine.Engine, query, location string) {
	store := eng.Filters()

	patch := engine.Patch{}
	if query != "" {
		patch.Text = &query
	}
	if location != "" {
		patch.Location = &location
	}
	if period, _ := cmd.Flags().GetString("salary-period"); period != "" {
		patch.SalaryPeriod = &period
	}
	if cmd.Flags().Changed("salary-min") {
		min, _ := cmd.Flags().GetFloat64("salary-min")
		patch.SalaryMin = &min
	}
	if cmd.Flags().Changed("salary-max") {
		max, _ := cmd.Flags().GetFloat64("salary-max")
		patch.SalaryMax = &max
	}
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		patch.RemoteOnly = &remote
	}
	if posted, _ := cmd.Flags().GetString("posted"); posted != "" {
		patch.DatePosted = &posted
	}
	if sector, _ := cmd.Flags().GetString("sector"); sector != "" {
		patch.SectorType = &sector
	}
	if class, _ := cmd.Flags().GetString("company-class"); class != "" {
		patch.CompanyLocationClass = &class
	}
	store.Set(patch)

	addAll := func(cat engine.Category, flag string) {
		values, _ := cmd.Flags().GetStringSlice(flag)
		for _, v := range values {
			store.Add(cat, v)
		}
	}
	addAll(engine.CategoryJobTypes, "type")
	addAll(engine.CategoryExperience, "experience")
	addAll(engine.CategoryIndustries, "industry")
	addAll(engine.CategorySkills, "skill")
	addAll(engine.CategoryRegions, "region")
	addAll(engine.CategoryVisa, "visa")
	addAll(engine.CategoryBenefits, "benefit")
}

// buildEngine wires an engine to the app's persistence store and config.
func buildEngine(application *app.App) *engine.Engine {
	cfg := application.Config
	return engine.New(engine.Options{
		SettleDelay:   time.Duration(cfg.SettleDelayMS) * time.Millisecond,
		DiscreteDelay: time.Duration(cfg.DiscreteDelayMS) * time.Millisecond,
		PageSize:      cfg.PageSize,
		Gateway:       application.Store,
	})
}

var titleCaser = cases.Title(language.English)

// renderPage prints one result page with its metadata.
func renderPage(result engine.ResultPage) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%d matching jobs — page %d/%d",
		result.Total, result.Page, max(result.PageCount, 1))))

	if len(result.Listings) == 0 {
		fmt.Println("No jobs match the active filters. Clear some filters and try again.")
		return
	}

	offset := (result.Page - 1) * result.PageSize
	for i, l := range result.Listings {
		fmt.Printf("\n%d. %s\n", offset+i+1, l.Title)
		fmt.Printf("   %s %s\n", labelStyle.Render("Company:"), l.Organization)
		fmt.Printf("   %s %s\n", labelStyle.Render("Location:"), formatLocation(l))
		if l.EmploymentType != "" {
			fmt.Printf("   %s %s\n", labelStyle.Render("Type:"), titleCaser.String(l.EmploymentType))
		}
		if l.Salary.Min > 0 || l.Salary.Max > 0 {
			fmt.Printf("   %s %s\n", labelStyle.Render("Salary:"), formatSalary(l.Salary))
		}
		if len(l.RequiredSkills) > 0 {
			fmt.Printf("   %s %s\n", labelStyle.Render("Skills:"), strings.Join(l.RequiredSkills, ", "))
		}
		if l.MatchScore != nil {
			fmt.Printf("   %s %.0f%%\n", labelStyle.Render("Match:"), *l.MatchScore)
		}
	}
}

func formatLocation(l models.Listing) string {
	if l.City == "" || strings.EqualFold(l.City, l.Region) {
		return l.Region
	}
	return l.City + ", " + l.Region
}

func formatSalary(s models.Salary) string {
	unit := "month"
	if s.Period == models.PeriodAnnual {
		unit = "year"
	}
	return fmt.Sprintf("%s %.0f–%.0f / %s", s.Currency, s.Min, s.Max, unit)
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("query", "", "Free-text query")
	searchCmd.Flags().String("location", "", "Location query")
	searchCmd.Flags().StringSlice("type", nil, "Job type (repeatable)")
	searchCmd.Flags().StringSlice("experience", nil, "Experience level (repeatable)")
	searchCmd.Flags().Float64("salary-min", 0, "Minimum salary")
	searchCmd.Flags().Float64("salary-max", 0, "Maximum salary")
	searchCmd.Flags().String("salary-period", "", "Salary period: monthly or annual")
	searchCmd.Flags().Bool("remote", false, "Remote positions only")
	searchCmd.Flags().String("posted", "", "Posted within: today, week, month")
	searchCmd.Flags().StringSlice("industry", nil, "Industry (repeatable)")
	searchCmd.Flags().StringSlice("skill", nil, "Skill term (repeatable)")
	searchCmd.Flags().StringSlice("region", nil, "Region (repeatable)")
	searchCmd.Flags().StringSlice("visa", nil, "Visa status (repeatable)")
	searchCmd.Flags().String("sector", "", "Sector: government, semi-government, private")
	searchCmd.Flags().String("company-class", "", "Company location class: mainland, freezone")
	searchCmd.Flags().StringSlice("benefit", nil, "Benefit (repeatable)")
	searchCmd.Flags().String("sort", "", "Sort key: relevance, dateDesc, dateAsc, salaryDesc, salaryAsc")
	searchCmd.Flags().Int("page", 1, "Result page (1-based)")
	searchCmd.Flags().Bool("share", false, "Print the shareable representation of this search")
	searchCmd.Flags().String("save", "", "Save this search under a label")
	searchCmd.Flags().String("from-share", "", "Restore a search from its shareable representation")
}
