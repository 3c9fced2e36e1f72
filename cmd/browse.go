package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobscout/internal/app"
	"jobscout/internal/engine"
	"jobscout/internal/provider"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse listings interactively",
	Long:  "An interactive prompt for narrowing listings with faceted filters, paging, sorting, saving and sharing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application := app.GetAppFromContext(ctx)
		if application == nil {
			return fmt.Errorf("application not initialized")
		}

		eng := buildEngine(application)
		defer eng.Stop()
		eng.LoadPersisted(ctx)

		listings, err := application.Provider.FetchListings(ctx, provider.Criteria{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: listing fetch failed: %v\n", err)
		}
		eng.SetListings(listings)
		eng.Flush()
		renderPage(eng.Result())

		runBrowseLoop(cmd, eng)
		return nil
	},
}

func runBrowseLoop(cmd *cobra.Command, eng *engine.Engine) {
	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)
	store := eng.Filters()

	printBrowseHelp()
	for {
		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch verb {
		case "", "help", "?":
			printBrowseHelp()
			continue
		case "quit", "q!", "exit":
			return
		case "q":
			store.Set(engine.Patch{Text: &arg})
		case "loc":
			store.Set(engine.Patch{Location: &arg})
		case "type":
			store.Toggle(engine.CategoryJobTypes, arg)
		case "exp":
			store.Toggle(engine.CategoryExperience, arg)
		case "skill":
			store.Toggle(engine.CategorySkills, arg)
		case "industry":
			store.Toggle(engine.CategoryIndustries, arg)
		case "region":
			store.Toggle(engine.CategoryRegions, arg)
		case "visa":
			store.Toggle(engine.CategoryVisa, arg)
		case "benefit":
			store.Toggle(engine.CategoryBenefits, arg)
		case "sector":
			store.Set(engine.Patch{SectorType: &arg})
		case "class":
			store.Set(engine.Patch{CompanyLocationClass: &arg})
		case "remote":
			on := arg != "off"
			store.Set(engine.Patch{RemoteOnly: &on})
		case "posted":
			store.Set(engine.Patch{DatePosted: &arg})
		case "salary":
			if !applySalaryArg(store, arg) {
				fmt.Println("usage: salary <min>-<max> [monthly|annual]")
				continue
			}
		case "sort":
			eng.SetSort(engine.SortKey(arg))
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				fmt.Println("usage: page <n>")
				continue
			}
			eng.SetPage(n)
		case "clear":
			if arg == "" {
				store.ClearAll()
			} else if cat, ok := categoryByName(arg); ok {
				store.ClearCategory(cat)
			} else {
				fmt.Printf("unknown category %q\n", arg)
				continue
			}
		case "save":
			if arg == "" {
				fmt.Println("usage: save <label>")
				continue
			}
			if _, err := eng.SaveSearch(ctx, arg); err == nil {
				fmt.Printf("✓ Saved search as: %s\n", arg)
			}
			continue
		case "share":
			fmt.Printf("%s %s\n", labelStyle.Render("Share:"), eng.EncodeShare().Encode())
			continue
		case "filters":
			printFilters(store)
			continue
		case "industries", "skills":
			printVocabulary(cmd, verb)
			continue
		default:
			fmt.Printf("unknown command %q — type 'help'\n", verb)
			continue
		}

		eng.Flush()
		eng.CommitSearch(ctx)
		renderPage(eng.Result())
		for _, notice := range eng.Notices() {
			fmt.Println(noticeStyle.Render("! " + notice))
		}
	}
}

// applySalaryArg parses "min-max [period]".
func applySalaryArg(store *engine.Store, arg string) bool {
	rangePart, period, _ := strings.Cut(arg, " ")
	minRaw, maxRaw, found := strings.Cut(rangePart, "-")
	if !found {
		return false
	}
	min, err1 := strconv.ParseFloat(strings.TrimSpace(minRaw), 64)
	max, err2 := strconv.ParseFloat(strings.TrimSpace(maxRaw), 64)
	if err1 != nil || err2 != nil {
		return false
	}
	patch := engine.Patch{SalaryMin: &min, SalaryMax: &max}
	if period = strings.TrimSpace(period); period != "" {
		patch.SalaryPeriod = &period
	}
	store.Set(patch)
	return true
}

func categoryByName(name string) (engine.Category, bool) {
	for _, cat := range engine.Categories {
		if strings.EqualFold(string(cat), name) {
			return cat, true
		}
	}
	// Accept the short names used by the browse commands too.
	aliases := map[string]engine.Category{
		"type": engine.CategoryJobTypes, "exp": engine.CategoryExperience,
		"skill": engine.CategorySkills, "industry": engine.CategoryIndustries,
		"region": engine.CategoryRegions, "visa": engine.CategoryVisa,
		"benefit": engine.CategoryBenefits, "sector": engine.CategorySector,
		"class": engine.CategoryCompanyClass, "loc": engine.CategoryLocation,
		"q": engine.CategoryText, "posted": engine.CategoryDatePosted,
	}
	cat, ok := aliases[strings.ToLower(name)]
	return cat, ok
}

// fetchVocabulary returns the requested facet vocabulary from the provider.
func fetchVocabulary(ctx context.Context, p provider.Provider, kind string) ([]string, error) {
	if kind == "industries" {
		return p.FetchIndustries(ctx)
	}
	return p.FetchSkillsVocabulary(ctx)
}

func printVocabulary(cmd *cobra.Command, kind string) {
	application := app.GetAppFromContext(cmd.Context())
	if application == nil {
		return
	}
	values, err := fetchVocabulary(cmd.Context(), application.Provider, kind)
	if err != nil || len(values) == 0 {
		fmt.Printf("%s vocabulary unavailable\n", kind)
		return
	}
	fmt.Println(titleStyle.Render(titleCaser.String(kind)))
	for _, v := range values {
		fmt.Println("  " + v)
	}
}

func printFilters(store *engine.Store) {
	f := store.Get()
	fmt.Println(titleStyle.Render("Active Filters"))
	if f.Text != "" {
		fmt.Printf("  %s %s\n", labelStyle.Render("Text:"), f.Text)
	}
	if f.Location != "" {
		fmt.Printf("  %s %s\n", labelStyle.Render("Location:"), f.Location)
	}
	printSet := func(label string, values []string) {
		if len(values) > 0 {
			fmt.Printf("  %s %s\n", labelStyle.Render(label), strings.Join(values, ", "))
		}
	}
	printSet("Types:", f.JobTypes)
	printSet("Experience:", f.ExperienceLevels)
	printSet("Industries:", f.Industries)
	printSet("Regions:", f.Regions)
	printSet("Visa:", f.VisaStatuses)
	printSet("Benefits:", f.Benefits)
	if len(f.Skills) > 0 {
		parts := make([]string, 0, len(f.Skills))
		for _, sk := range f.Skills {
			parts = append(parts, sk.Term+" ("+sk.Requirement+")")
		}
		fmt.Printf("  %s %s\n", labelStyle.Render("Skills:"), strings.Join(parts, ", "))
	}
	fmt.Printf("  %s %.0f–%.0f %s\n", labelStyle.Render("Salary:"), f.SalaryMin, f.SalaryMax, f.SalaryPeriod)
	if f.RemoteOnly {
		fmt.Printf("  %s yes\n", labelStyle.Render("Remote only:"))
	}
	if f.DatePosted != "" {
		fmt.Printf("  %s %s\n", labelStyle.Render("Posted:"), f.DatePosted)
	}
	fmt.Printf("  %s %s\n", labelStyle.Render("Sector:"), f.SectorType)
	fmt.Printf("  %s %s\n", labelStyle.Render("Company class:"), f.CompanyLocationClass)
}

func printBrowseHelp() {
	fmt.Println(valueStyle.Render(`Commands:
  q <text>           set free-text query       loc <text>        set location
  type|exp|skill|industry|region|visa|benefit <v>   toggle a facet value
  sector|class <v>   set enum filter           remote [off]      remote only
  posted <window>    today|week|month          salary <min>-<max> [period]
  sort <key>         relevance|dateDesc|dateAsc|salaryDesc|salaryAsc
  page <n>           go to page                clear [category]  reset filters
  filters            show active filters       save <label>      save search
  industries|skills  list facet vocabularies
  share              print shareable link      quit              exit`))
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
