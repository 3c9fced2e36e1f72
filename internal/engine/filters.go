package engine

import (
	"strings"

	"jobscout/pkg/models"
)

// Category identifies one filter dimension for toggle/add/remove/clear.
type Category string

const (
	CategoryText         Category = "text"
	CategoryLocation     Category = "location"
	CategoryJobTypes     Category = "jobTypes"
	CategoryExperience   Category = "experienceLevels"
	CategorySalary       Category = "salary"
	CategoryRemote       Category = "remoteOnly"
	CategoryDatePosted   Category = "datePosted"
	CategoryIndustries   Category = "industries"
	CategorySkills       Category = "skills"
	CategoryRegions      Category = "regions"
	CategoryVisa         Category = "visaStatuses"
	CategorySector       Category = "sectorType"
	CategoryCompanyClass Category = "companyLocationClass"
	CategoryBenefits     Category = "benefits"
)

// Categories lists every dimension, in pipeline order.
var Categories = []Category{
	CategoryText, CategoryLocation, CategoryJobTypes, CategoryExperience,
	CategorySalary, CategoryRemote, CategoryDatePosted, CategoryIndustries,
	CategorySkills, CategoryRegions, CategoryVisa, CategorySector,
	CategoryCompanyClass, CategoryBenefits,
}

// InputKind classifies a mutation for the coalescer: continuous inputs are
// keystroke streams, discrete ones are atomic clicks.
type InputKind int

const (
	Continuous InputKind = iota
	Discrete
)

// kindOf maps a category to its coalescing behavior. Free-text dimensions
// debounce on a settle window; everything else dispatches after a short
// fixed delay.
func kindOf(cat Category) InputKind {
	switch cat {
	case CategoryText, CategoryLocation:
		return Continuous
	default:
		return Discrete
	}
}

// Patch is a partial FilterState update. Nil pointer fields and nil slices
// leave the corresponding dimension unchanged.
type Patch struct {
	Text                 *string
	Location             *string
	JobTypes             []string
	ExperienceLevels     []string
	SalaryMin            *float64
	SalaryMax            *float64
	SalaryPeriod         *string
	RemoteOnly           *bool
	DatePosted           *string
	Industries           []string
	Skills               []models.SkillFilter
	Regions              []string
	VisaStatuses         []string
	SectorType           *string
	CompanyLocationClass *string
	Benefits             []string
}

// Store is the canonical owner of the active FilterState. Every mutation
// goes through its operation set and schedules a recompute via onChange;
// nothing recomputes synchronously.
type Store struct {
	state    models.FilterState
	onChange func(InputKind)
}

// NewStore returns a Store at the all-defaults state. onChange may be nil.
func NewStore(onChange func(InputKind)) *Store {
	return &Store{state: models.DefaultFilters(), onChange: onChange}
}

// Get returns a deep copy of the current state.
func (s *Store) Get() models.FilterState {
	return copyState(s.state)
}

// Set applies a partial update. Changing the salary period converts the
// current bounds into the new unit before any explicit bound in the patch
// is applied, so a range is never interpreted in a mixed unit.
func (s *Store) Set(p Patch) {
	kind := Discrete
	st := copyState(s.state)

	if p.SalaryPeriod != nil && *p.SalaryPeriod != st.SalaryPeriod {
		st.SalaryMin = convertAmount(st.SalaryMin, st.SalaryPeriod, *p.SalaryPeriod)
		st.SalaryMax = convertAmount(st.SalaryMax, st.SalaryPeriod, *p.SalaryPeriod)
		st.SalaryPeriod = *p.SalaryPeriod
	}
	if p.Text != nil {
		st.Text = *p.Text
		kind = Continuous
	}
	if p.Location != nil {
		st.Location = *p.Location
		kind = Continuous
	}
	if p.JobTypes != nil {
		st.JobTypes = dedupFold(p.JobTypes)
	}
	if p.ExperienceLevels != nil {
		st.ExperienceLevels = dedupFold(p.ExperienceLevels)
	}
	if p.SalaryMin != nil {
		st.SalaryMin = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		st.SalaryMax = *p.SalaryMax
	}
	st.SalaryMin, st.SalaryMax = clampSalaryRange(st.SalaryMin, st.SalaryMax)
	if p.RemoteOnly != nil {
		st.RemoteOnly = *p.RemoteOnly
	}
	if p.DatePosted != nil {
		st.DatePosted = *p.DatePosted
	}
	if p.Industries != nil {
		st.Industries = dedupFold(p.Industries)
	}
	if p.Skills != nil {
		st.Skills = dedupSkills(p.Skills)
	}
	if p.Regions != nil {
		st.Regions = dedupFold(p.Regions)
	}
	if p.VisaStatuses != nil {
		st.VisaStatuses = dedupFold(p.VisaStatuses)
	}
	if p.SectorType != nil {
		st.SectorType = *p.SectorType
	}
	if p.CompanyLocationClass != nil {
		st.CompanyLocationClass = *p.CompanyLocationClass
	}
	if p.Benefits != nil {
		st.Benefits = dedupFold(p.Benefits)
	}

	s.commit(st, kind)
}

// Toggle adds value to a set-valued category if absent, else removes it.
// Applying it twice restores the original membership.
func (s *Store) Toggle(cat Category, value string) {
	if s.has(cat, value) {
		s.Remove(cat, value)
		return
	}
	s.Add(cat, value)
}

// Add inserts a value into a set-valued category, case-insensitively
// deduplicated. Skills added this way default to the preferred tag.
func (s *Store) Add(cat Category, value string) {
	st := copyState(s.state)
	switch cat {
	case CategorySkills:
		st.Skills = addSkill(st.Skills, models.SkillFilter{Term: value, Requirement: models.SkillPreferred})
	default:
		if target := setField(&st, cat); target != nil {
			*target = addFold(*target, value)
		}
	}
	s.commit(st, kindOf(cat))
}

// AddSkill inserts a skill term with an explicit requirement tag.
func (s *Store) AddSkill(term, requirement string) {
	st := copyState(s.state)
	st.Skills = addSkill(st.Skills, models.SkillFilter{Term: term, Requirement: requirement})
	s.commit(st, Discrete)
}

// Remove deletes a value from a set-valued category.
func (s *Store) Remove(cat Category, value string) {
	st := copyState(s.state)
	switch cat {
	case CategorySkills:
		out := st.Skills[:0:0]
		for _, sk := range st.Skills {
			if !strings.EqualFold(sk.Term, value) {
				out = append(out, sk)
			}
		}
		st.Skills = out
	default:
		if target := setField(&st, cat); target != nil {
			*target = removeFold(*target, value)
		}
	}
	s.commit(st, kindOf(cat))
}

// ClearCategory resets one dimension: arrays to empty, booleans to false,
// enums to their sentinel, and the salary range to the default bounds for
// the currently selected period.
func (s *Store) ClearCategory(cat Category) {
	st := copyState(s.state)
	clearCategory(&st, cat)
	s.commit(st, kindOf(cat))
}

// ClearAll resets every dimension to its default.
func (s *Store) ClearAll() {
	st := models.DefaultFilters()
	s.commit(st, Discrete)
}

// Replace installs a complete state without scheduling a recompute. Used
// when restoring a shared or saved search before the first run.
func (s *Store) Replace(st models.FilterState) {
	st.SalaryMin, st.SalaryMax = clampSalaryRange(st.SalaryMin, st.SalaryMax)
	s.state = copyState(st)
}

func (s *Store) commit(st models.FilterState, kind InputKind) {
	s.state = st
	if s.onChange != nil {
		s.onChange(kind)
	}
}

func (s *Store) has(cat Category, value string) bool {
	if cat == CategorySkills {
		for _, sk := range s.state.Skills {
			if strings.EqualFold(sk.Term, value) {
				return true
			}
		}
		return false
	}
	st := s.state
	if target := setField(&st, cat); target != nil {
		return containsFold(*target, value)
	}
	return false
}

// setField maps a set-valued category to its slice within st.
func setField(st *models.FilterState, cat Category) *[]string {
	switch cat {
	case CategoryJobTypes:
		return &st.JobTypes
	case CategoryExperience:
		return &st.ExperienceLevels
	case CategoryIndustries:
		return &st.Industries
	case CategoryRegions:
		return &st.Regions
	case CategoryVisa:
		return &st.VisaStatuses
	case CategoryBenefits:
		return &st.Benefits
	default:
		return nil
	}
}

func clearCategory(st *models.FilterState, cat Category) {
	switch cat {
	case CategoryText:
		st.Text = ""
	case CategoryLocation:
		st.Location = ""
	case CategorySalary:
		st.SalaryMin = 0
		st.SalaryMax = models.DefaultSalaryCap(st.SalaryPeriod)
	case CategoryRemote:
		st.RemoteOnly = false
	case CategoryDatePosted:
		st.DatePosted = models.DatePostedAny
	case CategorySector:
		st.SectorType = models.SentinelAll
	case CategoryCompanyClass:
		st.CompanyLocationClass = models.SentinelAll
	case CategorySkills:
		st.Skills = nil
	default:
		if target := setField(st, cat); target != nil {
			*target = nil
		}
	}
}

func copyState(st models.FilterState) models.FilterState {
	out := st
	out.JobTypes = append([]string(nil), st.JobTypes...)
	out.ExperienceLevels = append([]string(nil), st.ExperienceLevels...)
	out.Industries = append([]string(nil), st.Industries...)
	out.Skills = append([]models.SkillFilter(nil), st.Skills...)
	out.Regions = append([]string(nil), st.Regions...)
	out.VisaStatuses = append([]string(nil), st.VisaStatuses...)
	out.Benefits = append([]string(nil), st.Benefits...)
	return out
}

func containsFold(values []string, v string) bool {
	for _, existing := range values {
		if strings.EqualFold(existing, v) {
			return true
		}
	}
	return false
}

func addFold(values []string, v string) []string {
	if v == "" || containsFold(values, v) {
		return values
	}
	return append(values, v)
}

func removeFold(values []string, v string) []string {
	out := values[:0:0]
	for _, existing := range values {
		if !strings.EqualFold(existing, v) {
			out = append(out, existing)
		}
	}
	return out
}

func dedupFold(values []string) []string {
	var out []string
	for _, v := range values {
		out = addFold(out, v)
	}
	return out
}

func addSkill(skills []models.SkillFilter, sk models.SkillFilter) []models.SkillFilter {
	if sk.Term == "" {
		return skills
	}
	for _, existing := range skills {
		if strings.EqualFold(existing.Term, sk.Term) {
			return skills
		}
	}
	if sk.Requirement == "" {
		sk.Requirement = models.SkillPreferred
	}
	return append(skills, sk)
}

func dedupSkills(skills []models.SkillFilter) []models.SkillFilter {
	var out []models.SkillFilter
	for _, sk := range skills {
		out = addSkill(out, sk)
	}
	return out
}
