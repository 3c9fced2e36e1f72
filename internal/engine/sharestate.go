package engine

import (
	"net/url"
	"strconv"
	"strings"

	"jobscout/pkg/models"
)

// Shareable-state keys. `q`, `location` and `page` match the address-bar
// contract; the remaining keys cover every filter dimension so a shared
// link reproduces the full search, not just the text query. Values at their
// defaults are omitted.
const (
	shareKeyText         = "q"
	shareKeyLocation     = "location"
	shareKeyPage         = "page"
	shareKeyJobTypes     = "types"
	shareKeyExperience   = "levels"
	shareKeySalaryMin    = "salary_min"
	shareKeySalaryMax    = "salary_max"
	shareKeySalaryPeriod = "salary_period"
	shareKeyRemote       = "remote"
	shareKeyDatePosted   = "posted"
	shareKeyIndustries   = "industries"
	shareKeySkills       = "skills"
	shareKeyRegions      = "regions"
	shareKeyVisa         = "visa"
	shareKeySector       = "sector"
	shareKeyCompanyClass = "company_class"
	shareKeyBenefits     = "benefits"
)

// EncodeState renders the non-default subset of a filter state plus the
// current page as a flat key/value map. Page 1 is omitted.
func EncodeState(f models.FilterState, page int) url.Values {
	v := url.Values{}
	setNonEmpty := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}

	setNonEmpty(shareKeyText, strings.TrimSpace(f.Text))
	setNonEmpty(shareKeyLocation, strings.TrimSpace(f.Location))
	if page > 1 {
		v.Set(shareKeyPage, strconv.Itoa(page))
	}
	setNonEmpty(shareKeyJobTypes, strings.Join(f.JobTypes, ","))
	setNonEmpty(shareKeyExperience, strings.Join(f.ExperienceLevels, ","))
	if f.SalaryMin > 0 {
		v.Set(shareKeySalaryMin, formatAmount(f.SalaryMin))
	}
	if f.SalaryMax != models.DefaultSalaryCap(f.SalaryPeriod) {
		v.Set(shareKeySalaryMax, formatAmount(f.SalaryMax))
	}
	if f.SalaryPeriod != "" && f.SalaryPeriod != models.PeriodMonthly {
		v.Set(shareKeySalaryPeriod, f.SalaryPeriod)
	}
	if f.RemoteOnly {
		v.Set(shareKeyRemote, "1")
	}
	if f.DatePosted != "" && f.DatePosted != models.DatePostedAny {
		v.Set(shareKeyDatePosted, f.DatePosted)
	}
	setNonEmpty(shareKeyIndustries, strings.Join(f.Industries, ","))
	setNonEmpty(shareKeySkills, encodeSkills(f.Skills))
	setNonEmpty(shareKeyRegions, strings.Join(f.Regions, ","))
	setNonEmpty(shareKeyVisa, strings.Join(f.VisaStatuses, ","))
	if f.SectorType != "" && f.SectorType != models.SentinelAll {
		v.Set(shareKeySector, f.SectorType)
	}
	if f.CompanyLocationClass != "" && f.CompanyLocationClass != models.SentinelAll {
		v.Set(shareKeyCompanyClass, f.CompanyLocationClass)
	}
	setNonEmpty(shareKeyBenefits, strings.Join(f.Benefits, ","))
	return v
}

// DecodeState rebuilds a filter state and page from a shareable map.
// Missing keys keep their defaults, so DecodeState(EncodeState(s)) is
// equivalent to s for every covered field. Malformed numeric values are
// ignored rather than rejected.
func DecodeState(v url.Values) (models.FilterState, int) {
	f := models.DefaultFilters()

	f.Text = v.Get(shareKeyText)
	f.Location = v.Get(shareKeyLocation)
	if period := v.Get(shareKeySalaryPeriod); period == models.PeriodAnnual {
		f.SalaryPeriod = models.PeriodAnnual
		f.SalaryMax = models.DefaultSalaryCap(models.PeriodAnnual)
	}
	if raw := v.Get(shareKeySalaryMin); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			f.SalaryMin = amount
		}
	}
	if raw := v.Get(shareKeySalaryMax); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			f.SalaryMax = amount
		}
	}
	f.SalaryMin, f.SalaryMax = clampSalaryRange(f.SalaryMin, f.SalaryMax)
	f.JobTypes = splitList(v.Get(shareKeyJobTypes))
	f.ExperienceLevels = splitList(v.Get(shareKeyExperience))
	f.RemoteOnly = v.Get(shareKeyRemote) == "1"
	if posted := v.Get(shareKeyDatePosted); posted != "" {
		f.DatePosted = posted
	}
	f.Industries = splitList(v.Get(shareKeyIndustries))
	f.Skills = decodeSkills(v.Get(shareKeySkills))
	f.Regions = splitList(v.Get(shareKeyRegions))
	f.VisaStatuses = splitList(v.Get(shareKeyVisa))
	if sector := v.Get(shareKeySector); sector != "" {
		f.SectorType = sector
	}
	if class := v.Get(shareKeyCompanyClass); class != "" {
		f.CompanyLocationClass = class
	}
	f.Benefits = splitList(v.Get(shareKeyBenefits))

	page := 1
	if raw := v.Get(shareKeyPage); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return f, page
}

// encodeSkills renders skills as "term:requirement" pairs; the preferred
// tag is the default and is left implicit.
func encodeSkills(skills []models.SkillFilter) string {
	parts := make([]string, 0, len(skills))
	for _, sk := range skills {
		if sk.Requirement == models.SkillRequired {
			parts = append(parts, sk.Term+":"+sk.Requirement)
		} else {
			parts = append(parts, sk.Term)
		}
	}
	return strings.Join(parts, ",")
}

func decodeSkills(raw string) []models.SkillFilter {
	var out []models.SkillFilter
	for _, part := range splitList(raw) {
		term, req, found := strings.Cut(part, ":")
		sk := models.SkillFilter{Term: term, Requirement: models.SkillPreferred}
		if found && req == models.SkillRequired {
			sk.Requirement = models.SkillRequired
		}
		out = addSkill(out, sk)
	}
	return out
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		out = addFold(out, strings.TrimSpace(part))
	}
	return out
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
