package provider

import (
	"strings"
	"time"

	"jobscout/pkg/models"
)

// Built-in sample collection, served when no provider is configured or a
// fetch fails. Shapes mirror a Gulf job board: AED salaries, emirate
// regions, sponsored-visa roles.

type sampleSeed struct {
	title    string
	org      string
	region   string
	city     string
	empType  string
	salMin   float64
	salMax   float64
	period   string
	daysAgo  int
	skills   []string
	industry string
	benefits []string
}

var sampleSeeds = []sampleSeed{
	{"Senior Backend Engineer", "Gulf Commerce Group", "Dubai", "Dubai", "full-time", 30000, 45000, models.PeriodMonthly, 2, []string{"Go", "PostgreSQL", "Kubernetes"}, "Technology", []string{"health insurance", "annual flight"}},
	{"Frontend Developer", "Oasis Digital", "Dubai", "Dubai Internet City", "full-time", 18000, 26000, models.PeriodMonthly, 5, []string{"React", "TypeScript", "CSS"}, "Technology", []string{"health insurance"}},
	{"Marketing Manager", "Pearl Hospitality", "Abu Dhabi", "Abu Dhabi", "full-time", 22000, 30000, models.PeriodMonthly, 12, []string{"SEO", "SEM", "Brand Strategy"}, "Hospitality", []string{"housing allowance"}},
	{"Data Analyst", "Falcon Logistics", "Sharjah", "Sharjah", "full-time", 15000, 25000, models.PeriodMonthly, 1, []string{"SQL", "Python", "Tableau"}, "Logistics", []string{"health insurance"}},
	{"DevOps Engineer", "Desert Cloud", "Dubai", "Remote", "remote", 28000, 40000, models.PeriodMonthly, 3, []string{"AWS", "Terraform", "Docker"}, "Technology", []string{"remote stipend"}},
	{"Civil Engineer", "Emirates Build Co", "Abu Dhabi", "Al Ain", "contract", 20000, 28000, models.PeriodMonthly, 20, []string{"AutoCAD", "Project Management"}, "Construction", []string{"transport allowance"}},
	{"Product Manager", "Souq Ventures", "Dubai", "Dubai", "full-time", 35000, 50000, models.PeriodMonthly, 7, []string{"Roadmapping", "Agile", "Analytics"}, "Technology", []string{"health insurance", "stock options"}},
	{"HR Coordinator", "Coastline Retail", "Ras Al Khaimah", "Ras Al Khaimah", "part-time", 8000, 12000, models.PeriodMonthly, 15, []string{"Recruitment", "Onboarding"}, "Retail", nil},
	{"Mobile Engineer", "Dune Apps", "Dubai", "Remote", "remote", 300000, 420000, models.PeriodAnnual, 4, []string{"Flutter", "Kotlin", "Swift"}, "Technology", []string{"remote stipend", "health insurance"}},
	{"Finance Controller", "Gulf Commerce Group", "Dubai", "Dubai", "full-time", 40000, 50000, models.PeriodMonthly, 28, []string{"IFRS", "Excel", "SAP"}, "Finance", []string{"annual flight", "bonus"}},
	{"QA Engineer", "Oasis Digital", "Dubai", "Dubai", "full-time", 15000, 25000, models.PeriodMonthly, 6, []string{"Selenium", "Cypress", "API Testing"}, "Technology", []string{"health insurance"}},
	{"Sales Executive", "Pearl Hospitality", "Abu Dhabi", "Abu Dhabi", "full-time", 10000, 18000, models.PeriodMonthly, 9, []string{"CRM", "Negotiation"}, "Hospitality", []string{"commission"}},
	{"Machine Learning Engineer", "Falcon AI Lab", "Dubai", "Dubai", "full-time", 38000, 52000, models.PeriodMonthly, 2, []string{"Python", "PyTorch", "MLOps"}, "Technology", []string{"health insurance", "stock options"}},
	{"Graphic Designer", "Coastline Retail", "Sharjah", "Sharjah", "full-time", 9000, 14000, models.PeriodMonthly, 18, []string{"Photoshop", "Illustrator", "Figma"}, "Retail", nil},
	{"Site Supervisor", "Emirates Build Co", "Abu Dhabi", "Abu Dhabi", "contract", 14000, 20000, models.PeriodMonthly, 35, []string{"Site Safety", "Scheduling"}, "Construction", []string{"transport allowance"}},
	{"Backend Engineer", "Dune Apps", "Dubai", "Dubai", "full-time", 22000, 32000, models.PeriodMonthly, 1, []string{"Node.js", "React", "MongoDB"}, "Technology", []string{"health insurance"}},
	{"Content Writer", "Souq Ventures", "Dubai", "Remote", "remote", 8000, 13000, models.PeriodMonthly, 11, []string{"Copywriting", "SEO"}, "Media", []string{"remote stipend"}},
	{"Legal Counsel", "Gulf Commerce Group", "Dubai", "Dubai", "full-time", 45000, 60000, models.PeriodMonthly, 40, []string{"Contract Law", "Compliance"}, "Legal", []string{"annual flight"}},
	{"Nurse", "Harbor Health", "Abu Dhabi", "Abu Dhabi", "full-time", 12000, 17000, models.PeriodMonthly, 8, []string{"Patient Care", "Triage"}, "Healthcare", []string{"health insurance", "housing allowance"}},
	{"Security Engineer", "Desert Cloud", "Dubai", "Dubai", "full-time", 32000, 44000, models.PeriodMonthly, 14, []string{"SIEM", "Penetration Testing", "Go"}, "Technology", []string{"health insurance"}},
	{"Operations Manager", "Falcon Logistics", "Jebel Ali", "Jebel Ali", "full-time", 25000, 35000, models.PeriodMonthly, 22, []string{"Supply Chain", "ERP"}, "Logistics", []string{"transport allowance"}},
	{"Intern - Software", "Oasis Digital", "Dubai", "Dubai", "internship", 4000, 6000, models.PeriodMonthly, 3, []string{"JavaScript", "Git"}, "Technology", nil},
	{"Account Manager", "Dune Apps", "Dubai", "Dubai", "full-time", 16000, 24000, models.PeriodMonthly, 17, []string{"Client Relations", "CRM"}, "Technology", []string{"commission"}},
	{"Data Engineer", "Falcon AI Lab", "Dubai", "Remote", "remote", 336000, 480000, models.PeriodAnnual, 5, []string{"Spark", "Airflow", "Python"}, "Technology", []string{"remote stipend", "health insurance"}},
	{"Teacher - Mathematics", "Horizon Schools", "Sharjah", "Sharjah", "full-time", 11000, 16000, models.PeriodMonthly, 26, []string{"Curriculum Design", "Classroom Management"}, "Education", []string{"housing allowance", "annual flight"}},
}

// SampleListings materializes the sample collection, narrowed by the
// criteria the same way a remote provider would narrow it.
func SampleListings(c Criteria) []models.Listing {
	now := time.Now()
	listings := make([]models.Listing, 0, len(sampleSeeds))
	for i, seed := range sampleSeeds {
		l := models.Listing{
			ID:             i + 1,
			Title:          seed.title,
			Organization:   seed.org,
			Region:         seed.region,
			City:           seed.city,
			EmploymentType: seed.empType,
			Salary: models.Salary{
				Min:      seed.salMin,
				Max:      seed.salMax,
				Currency: "AED",
				Period:   seed.period,
			},
			PostedAt:       now.AddDate(0, 0, -seed.daysAgo),
			RequiredSkills: seed.skills,
			Industry:       seed.industry,
			Benefits:       seed.benefits,
			Description:    seed.title + " at " + seed.org + ", " + seed.city + ". Key skills: " + strings.Join(seed.skills, ", ") + ".",
		}
		listings = append(listings, l)
	}
	Enrich(listings)
	Score(listings, c)

	if c.Query == "" && c.Location == "" {
		return listings
	}
	matched := listings[:0:0]
	for _, l := range listings {
		if c.Query != "" && !containsQuery(l, c.Query) {
			continue
		}
		if c.Location != "" && !containsLocation(l, c.Location) {
			continue
		}
		matched = append(matched, l)
	}
	return matched
}

func containsQuery(l models.Listing, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Organization), q) ||
		strings.Contains(strings.ToLower(l.Description), q)
}

func containsLocation(l models.Listing, loc string) bool {
	loc = strings.ToLower(loc)
	return strings.Contains(strings.ToLower(l.City), loc) ||
		strings.Contains(strings.ToLower(l.Region), loc)
}

func sampleIndustries() []string {
	seen := map[string]bool{}
	var out []string
	for _, seed := range sampleSeeds {
		if !seen[seed.industry] {
			seen[seed.industry] = true
			out = append(out, seed.industry)
		}
	}
	return out
}

func sampleSkills() []string {
	seen := map[string]bool{}
	var out []string
	for _, seed := range sampleSeeds {
		for _, skill := range seed.skills {
			if !seen[skill] {
				seen[skill] = true
				out = append(out, skill)
			}
		}
	}
	return out
}
