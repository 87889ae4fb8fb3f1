// Package formatter renders a JobInformation as the plain-text report and
// the JSON document offered for download. Both renderings are pure.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jobspec-miner/internal/models"
)

const (
	ruleWidth = 80

	TimestampLayout = "2006-01-02 15:04:05"
	fileStampLayout = "20060102_150405"
)

var (
	banner = strings.Repeat("=", ruleWidth)
	rule   = strings.Repeat("-", ruleWidth)
)

type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
)

// ParseFormat accepts "txt"/"text" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Export is a rendered report ready to be handed to a client or a bucket.
type Export struct {
	FileName    string
	ContentType string
	Content     string
}

// Render produces the export for info in the given format, stamped with at.
func Render(info *models.JobInformation, at time.Time, format Format) (Export, error) {
	var content string
	switch format {
	case FormatText:
		content = ToText(info, Timestamp(at))
	case FormatJSON:
		out, err := ToJSON(info)
		if err != nil {
			return Export{}, err
		}
		content = out
	default:
		return Export{}, fmt.Errorf("unsupported export format %q", format)
	}

	return Export{
		FileName:    FileName(at, format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FileName returns job_extraction_<YYYYMMDD>_<HHMMSS>.<ext>.
func FileName(t time.Time, format Format) string {
	return fmt.Sprintf("job_extraction_%s.%s", t.Format(fileStampLayout), format)
}

// ToText renders the sectioned report. Section order and the rules for
// leaving out empty lines and sections are fixed; downstream tooling parses
// this layout.
func ToText(info *models.JobInformation, extractionDate string) string {
	r := &report{}

	r.line(banner)
	r.line("JOB INFORMATION EXTRACTION")
	r.line(banner)
	r.line("\nExtraction Date: " + extractionDate + "\n")
	r.line(rule)

	r.header("BASIC INFORMATION")
	r.labeled("Job Title", info.JobTitle)
	r.labeled("Company", info.CompanyName)
	r.labeled("Department", info.Department)
	r.labeled("Seniority Level", info.SeniorityLevel)
	r.labeled("Years of Experience", info.YearsOfExperience)

	r.header("WORK ARRANGEMENT")
	r.labeled("Work Type", info.WorkType)
	r.labeled("Location", info.Location)

	if models.Present(info.Salary) {
		r.header("COMPENSATION")
		r.labeled("Salary", info.Salary)
	}

	r.paragraph("EDUCATION REQUIREMENTS", info.EducationRequirements)

	r.numbered("REQUIRED CRITERIA", info.RequiredCriteria)
	r.numbered("PREFERRED QUALIFICATIONS", info.PreferredQualifications)
	r.numbered("SKILLS & TECHNOLOGIES", info.Skills)
	r.numbered("SCOPE OF RESPONSIBILITIES", info.ScopeOfResponsibilities)
	r.numbered("BENEFITS & PERKS", info.Benefits)

	r.paragraph("ADDITIONAL INFORMATION", info.AdditionalInfo)

	r.line("\n" + banner)
	return strings.Join(r.lines, "\n")
}

// ToJSON encodes info with two-space indentation. Absent scalars are
// omitted; list fields are always present, empty ones as [].
func ToJSON(info *models.JobInformation) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(info.Normalized()); err != nil {
		return "", fmt.Errorf("encode job information: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

type report struct {
	lines []string
}

func (r *report) line(s string) {
	r.lines = append(r.lines, s)
}

func (r *report) header(title string) {
	r.line("\n" + title)
	r.line(rule)
}

func (r *report) labeled(label string, value *string) {
	if models.Present(value) {
		r.line(label + ": " + *value)
	}
}

func (r *report) paragraph(title string, value *string) {
	if !models.Present(value) {
		return
	}
	r.header(title)
	r.line(*value)
}

func (r *report) numbered(title string, items []string) {
	if len(items) == 0 {
		return
	}
	r.header(title)
	for i, item := range items {
		r.line(fmt.Sprintf("%d. %s", i+1, item))
	}
}
