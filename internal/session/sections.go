package session

import (
	"jobspec-miner/internal/models"
)

// Section identifies one collapsible block of the result view.
type Section int

const (
	SectionBasic Section = iota
	SectionWork
	SectionCompensation
	SectionEducation
	SectionRequired
	SectionPreferred
	SectionSkills
	SectionResponsibilities
	SectionBenefits
	SectionAdditional

	sectionCount
)

var sectionTitles = [sectionCount]string{
	"Basic Information",
	"Work Arrangement",
	"Compensation",
	"Education Requirements",
	"Required Criteria",
	"Preferred Qualifications",
	"Skills & Technologies",
	"Scope of Responsibilities",
	"Benefits & Perks",
	"Additional Information",
}

func (s Section) Valid() bool {
	return s >= 0 && s < sectionCount
}

func (s Section) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sectionTitles[s]
}

type SectionView struct {
	Index    Section `json:"index"`
	Title    string  `json:"title"`
	Expanded bool    `json:"expanded"`
	// Visible is false for sections with nothing to show.
	Visible bool `json:"visible"`
}

func defaultExpanded() [sectionCount]bool {
	var e [sectionCount]bool
	e[SectionBasic] = true
	return e
}

func visible(s Section, info *models.JobInformation) bool {
	if info == nil {
		return false
	}
	switch s {
	case SectionBasic:
		return true
	case SectionWork:
		return models.Present(info.WorkType) || models.Present(info.Location)
	case SectionCompensation:
		return models.Present(info.Salary)
	case SectionEducation:
		return models.Present(info.EducationRequirements)
	case SectionRequired:
		return len(info.RequiredCriteria) > 0
	case SectionPreferred:
		return len(info.PreferredQualifications) > 0
	case SectionSkills:
		return len(info.Skills) > 0
	case SectionResponsibilities:
		return len(info.ScopeOfResponsibilities) > 0
	case SectionBenefits:
		return len(info.Benefits) > 0
	case SectionAdditional:
		return models.Present(info.AdditionalInfo)
	}
	return false
}
