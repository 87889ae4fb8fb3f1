package models

// JobInformation is everything extracted from a single job posting.
//
// Optional scalars are nil when the posting does not mention them. List
// fields keep the order the service returned them in and may contain
// duplicates. A value returned by the extractor is never modified afterwards.
type JobInformation struct {
	JobTitle                *string  `json:"job_title,omitempty"`
	CompanyName             *string  `json:"company_name,omitempty"`
	Department              *string  `json:"department,omitempty"`
	SeniorityLevel          *string  `json:"seniority_level,omitempty"`
	YearsOfExperience       *string  `json:"years_of_experience,omitempty"`
	WorkType                *string  `json:"work_type,omitempty"`
	Location                *string  `json:"location,omitempty"`
	Salary                  *string  `json:"salary,omitempty"`
	EducationRequirements   *string  `json:"education_requirements,omitempty"`
	RequiredCriteria        []string `json:"required_criteria"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	Skills                  []string `json:"skills"`
	ScopeOfResponsibilities []string `json:"scope_of_responsibilities"`
	Benefits                []string `json:"benefits"`
	AdditionalInfo          *string  `json:"additional_info,omitempty"`
}

// Summary holds the list counts shown above an extraction result.
type Summary struct {
	Skills           int `json:"skills"`
	Requirements     int `json:"requirements"`
	Responsibilities int `json:"responsibilities"`
	Benefits         int `json:"benefits"`
}

func (j *JobInformation) Summary() Summary {
	return Summary{
		Skills:           len(j.Skills),
		Requirements:     len(j.RequiredCriteria),
		Responsibilities: len(j.ScopeOfResponsibilities),
		Benefits:         len(j.Benefits),
	}
}

// Normalized returns a copy whose list fields are non-nil, so that empty
// lists encode as [] rather than null.
func (j JobInformation) Normalized() JobInformation {
	j.RequiredCriteria = nonNil(j.RequiredCriteria)
	j.PreferredQualifications = nonNil(j.PreferredQualifications)
	j.Skills = nonNil(j.Skills)
	j.ScopeOfResponsibilities = nonNil(j.ScopeOfResponsibilities)
	j.Benefits = nonNil(j.Benefits)
	return j
}

// Value returns the string behind an optional field, or "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Present reports whether an optional field carries a non-empty value.
func Present(s *string) bool {
	return s != nil && *s != ""
}

// String is a convenience for building optional fields.
func String(s string) *string {
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
