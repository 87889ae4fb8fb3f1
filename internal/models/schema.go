package models

import (
	"google.golang.org/genai"
)

// Field describes one JobInformation property as the extraction service sees it.
type Field struct {
	Name        string
	Description string
	List        bool
}

// Fields must stay in the same order, and with the same JSON names, as the
// JobInformation struct. schema_test.go enforces this.
var Fields = []Field{
	{Name: "job_title", Description: "Job title as written in the posting"},
	{Name: "company_name", Description: "Name of the hiring company"},
	{Name: "department", Description: "Department or team the role belongs to"},
	{Name: "seniority_level", Description: "Seniority level (e.g. Junior, Mid, Senior, Lead)"},
	{Name: "years_of_experience", Description: "Years of experience required"},
	{Name: "work_type", Description: "Work arrangement: Remote, Hybrid or On-site"},
	{Name: "location", Description: "Job location"},
	{Name: "salary", Description: "Salary or compensation information"},
	{Name: "education_requirements", Description: "Education requirements"},
	{Name: "required_criteria", Description: "Required criteria and qualifications", List: true},
	{Name: "preferred_qualifications", Description: "Preferred or nice-to-have qualifications", List: true},
	{Name: "skills", Description: "Technical skills and technologies", List: true},
	{Name: "scope_of_responsibilities", Description: "Responsibilities and duties", List: true},
	{Name: "benefits", Description: "Benefits and perks", List: true},
	{Name: "additional_info", Description: "Any additional relevant information"},
}

// FieldNames returns the JSON property names in schema order.
func FieldNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// ResponseSchema is the response constraint sent with every extraction request.
// A fresh value is returned on each call so callers may not share mutations.
func ResponseSchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(Fields))
	for _, f := range Fields {
		if f.List {
			props[f.Name] = &genai.Schema{
				Type:        genai.TypeArray,
				Description: f.Description,
				Items:       &genai.Schema{Type: genai.TypeString},
			}
			continue
		}
		props[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
			Nullable:    genai.Ptr(true),
		}
	}

	return &genai.Schema{
		Type:             genai.TypeObject,
		Description:      "Structured information extracted from a job description",
		Properties:       props,
		PropertyOrdering: FieldNames(),
	}
}
