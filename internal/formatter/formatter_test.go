package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"jobspec-miner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eq   = strings.Repeat("=", 80)
	dash = strings.Repeat("-", 80)
)

func fullInfo() *models.JobInformation {
	return &models.JobInformation{
		JobTitle:                models.String("Senior Backend Engineer"),
		CompanyName:             models.String("Acme"),
		Department:              models.String("Platform"),
		SeniorityLevel:          models.String("Senior"),
		YearsOfExperience:       models.String("5+"),
		WorkType:                models.String("Remote"),
		Location:                models.String("US"),
		Salary:                  models.String("$150k"),
		EducationRequirements:   models.String("BSc in Computer Science"),
		RequiredCriteria:        []string{"Go", "SQL"},
		PreferredQualifications: []string{"Kubernetes"},
		Skills:                  []string{"Python", "Go", "Rust"},
		ScopeOfResponsibilities: []string{"Build APIs"},
		Benefits:                []string{"401(k)"},
		AdditionalInfo:          models.String("Visa sponsorship available"),
	}
}

func TestToText_Full(t *testing.T) {
	want := strings.Join([]string{
		eq,
		"JOB INFORMATION EXTRACTION",
		eq,
		"\nExtraction Date: 2025-03-04 05:06:07\n",
		dash,
		"\nBASIC INFORMATION",
		dash,
		"Job Title: Senior Backend Engineer",
		"Company: Acme",
		"Department: Platform",
		"Seniority Level: Senior",
		"Years of Experience: 5+",
		"\nWORK ARRANGEMENT",
		dash,
		"Work Type: Remote",
		"Location: US",
		"\nCOMPENSATION",
		dash,
		"Salary: $150k",
		"\nEDUCATION REQUIREMENTS",
		dash,
		"BSc in Computer Science",
		"\nREQUIRED CRITERIA",
		dash,
		"1. Go",
		"2. SQL",
		"\nPREFERRED QUALIFICATIONS",
		dash,
		"1. Kubernetes",
		"\nSKILLS & TECHNOLOGIES",
		dash,
		"1. Python",
		"2. Go",
		"3. Rust",
		"\nSCOPE OF RESPONSIBILITIES",
		dash,
		"1. Build APIs",
		"\nBENEFITS & PERKS",
		dash,
		"1. 401(k)",
		"\nADDITIONAL INFORMATION",
		dash,
		"Visa sponsorship available",
		"\n" + eq,
	}, "\n")

	assert.Equal(t, want, ToText(fullInfo(), "2025-03-04 05:06:07"))
}

func TestToText_Empty(t *testing.T) {
	want := eq + "\nJOB INFORMATION EXTRACTION\n" + eq +
		"\n\nExtraction Date: now\n\n" + dash +
		"\n\nBASIC INFORMATION\n" + dash +
		"\n\nWORK ARRANGEMENT\n" + dash +
		"\n\n" + eq

	assert.Equal(t, want, ToText(&models.JobInformation{}, "now"))
}

func TestToText_CompensationOmission(t *testing.T) {
	info := &models.JobInformation{JobTitle: models.String("Engineer")}
	assert.NotContains(t, ToText(info, "now"), "COMPENSATION")

	info.Salary = models.String("")
	assert.NotContains(t, ToText(info, "now"), "COMPENSATION")

	info.Salary = models.String("$100k")
	out := ToText(info, "now")
	assert.Contains(t, out, "\nCOMPENSATION\n"+dash+"\nSalary: $100k")
}

func TestToText_Numbering(t *testing.T) {
	info := &models.JobInformation{Skills: []string{"Python", "Go", "Rust"}}

	out := ToText(info, "now")

	assert.Contains(t, out, "SKILLS & TECHNOLOGIES\n"+dash+"\n1. Python\n2. Go\n3. Rust\n")
	assert.NotContains(t, out, "REQUIRED CRITERIA")
	assert.NotContains(t, out, "BENEFITS & PERKS")
}

func TestToText_OmitsAbsentLines(t *testing.T) {
	info := &models.JobInformation{JobTitle: models.String("Engineer"), Location: models.String("Berlin")}

	out := ToText(info, "now")

	assert.Contains(t, out, "Job Title: Engineer")
	assert.Contains(t, out, "Location: Berlin")
	assert.NotContains(t, out, "Company:")
	assert.NotContains(t, out, "Work Type:")
	assert.NotContains(t, out, "EDUCATION REQUIREMENTS")
	assert.NotContains(t, out, "ADDITIONAL INFORMATION")
}

func TestToJSON(t *testing.T) {
	info := &models.JobInformation{
		JobTitle: models.String("R&D <Go> Engineer"),
		Skills:   []string{"Go"},
	}

	out, err := ToJSON(info)

	require.NoError(t, err)
	want := `{
  "job_title": "R&D <Go> Engineer",
  "required_criteria": [],
  "preferred_qualifications": [],
  "skills": [
    "Go"
  ],
  "scope_of_responsibilities": [],
  "benefits": []
}`
	assert.Equal(t, want, out)
}

func TestToJSON_RoundTripStable(t *testing.T) {
	for _, info := range []*models.JobInformation{fullInfo(), {}, {Salary: models.String("")}} {
		first, err := ToJSON(info)
		require.NoError(t, err)

		var parsed models.JobInformation
		require.NoError(t, json.Unmarshal([]byte(first), &parsed))

		second, err := ToJSON(&parsed)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	}
}

func TestFileNameAndTimestamp(t *testing.T) {
	at := time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)

	assert.Equal(t, "2025-03-04 05:06:07", Timestamp(at))
	assert.Equal(t, "job_extraction_20250304_050607.txt", FileName(at, FormatText))
	assert.Equal(t, "job_extraction_20250304_050607.json", FileName(at, FormatJSON))
}

func TestRender(t *testing.T) {
	at := time.Date(2025, time.March, 4, 5, 6, 7, 0, time.UTC)

	txt, err := Render(fullInfo(), at, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "job_extraction_20250304_050607.txt", txt.FileName)
	assert.Equal(t, "text/plain; charset=utf-8", txt.ContentType)
	assert.Contains(t, txt.Content, "Extraction Date: 2025-03-04 05:06:07")

	js, err := Render(fullInfo(), at, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", js.ContentType)
	assert.True(t, json.Valid([]byte(js.Content)))

	_, err = Render(fullInfo(), at, Format("pdf"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TXT")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
