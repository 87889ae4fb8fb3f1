// Package extractor turns free-text job postings into models.JobInformation
// using a schema-constrained call to Gemini.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	apperrors "jobspec-miner/internal/errors"
	"jobspec-miner/internal/gemini"
	"jobspec-miner/internal/models"
)

const DefaultModel = "gemini-2.5-flash"

var (
	errNotObject    = errors.New("response is not a JSON object")
	errTrailingData = errors.New("unexpected data after JSON object")
	errNullElement  = errors.New("list element is null")
)

// ClientFactory opens a generator for one credential. The pipeline calls it
// once per extraction and never reuses the result.
type ClientFactory func(ctx context.Context, credential string) (gemini.Generator, error)

type Extractor struct {
	newClient ClientFactory
	logger    *slog.Logger
}

func New(newClient ClientFactory, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{newClient: newClient, logger: logger}
}

// Extract makes a single attempt at extracting job information from text.
// Every failure is an *errors.ExtractionError: KindValidation when the
// service answered with something that does not fit the schema, and
// KindTransport for everything else.
func (e *Extractor) Extract(ctx context.Context, credential, text, model string) (*models.JobInformation, error) {

	if model == "" {
		model = DefaultModel
	}

	logger := e.logger.With(slog.String("model", model), slog.Int("input_chars", len(text)))
	start := time.Now()

	client, err := e.newClient(ctx, credential)
	if err != nil {
		xerr := apperrors.Transport("error creating client", err)
		logFailure(ctx, logger, slog.LevelError, "could not create gemini client", xerr)
		return nil, xerr
	}

	raw, err := client.GenerateJSON(ctx, model, BuildPrompt(text), models.ResponseSchema())
	if err != nil {
		xerr := apperrors.Transport("error extracting information", err)
		logFailure(ctx, logger, slog.LevelError, "extraction request failed", xerr)
		return nil, xerr
	}

	info, err := Parse(raw)
	if err != nil {
		xerr := apperrors.Validation("error validating extracted data", raw, err)
		logFailure(ctx, logger, slog.LevelWarn, "extracted data failed validation", xerr)
		return nil, xerr
	}

	logger.Info("extraction completed",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("skills", len(info.Skills)),
	)
	return info, nil
}

// logFailure records a failed attempt with enough detail to diagnose it
// later. The credential is never part of it.
func logFailure(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, xerr *apperrors.ExtractionError) {
	attrs := []slog.Attr{
		slog.String("kind", string(xerr.Kind)),
		slog.Bool("permanent", errors.Is(xerr, apperrors.ErrPermanentFailure)),
	}
	if xerr.Err != nil {
		attrs = append(attrs, slog.String("error", xerr.Err.Error()))
	}
	if xerr.RootCause != "" {
		attrs = append(attrs, slog.String("underlying_error", xerr.RootCause))
	}
	if xerr.Kind == apperrors.KindValidation {
		attrs = append(attrs, slog.String("response", xerr.Diagnostic))
	}
	attrs = append(attrs, slog.String("stack", string(xerr.Stack)))

	logger.LogAttrs(ctx, level, msg, attrs...)
}

// Parse validates a raw service response against the JobInformation shape.
// The response must be exactly one JSON object. Keys are matched exactly and
// unknown ones are ignored. Scalars must be strings or null; lists must be
// arrays of strings or null, and null lists become empty lists.
func Parse(raw string) (*models.JobInformation, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, errNotObject
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))

	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	var info models.JobInformation
	scalars, lists := targets(&info)

	for _, field := range models.Fields {
		value, ok := doc[field.Name]
		if !ok {
			continue
		}

		var err error
		if field.List {
			*lists[field.Name], err = decodeList(value)
		} else {
			*scalars[field.Name], err = decodeScalar(value)
		}
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	info = info.Normalized()
	return &info, nil
}

func decodeScalar(value json.RawMessage) (*string, error) {
	var s *string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeList(value json.RawMessage) ([]string, error) {
	var items []*string
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, nil
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w at index %d", errNullElement, i)
		}
		out = append(out, *item)
	}
	return out, nil
}

// targets maps every schema field name to the struct field it fills.
func targets(info *models.JobInformation) (map[string]**string, map[string]*[]string) {
	scalars := map[string]**string{
		"job_title":              &info.JobTitle,
		"company_name":           &info.CompanyName,
		"department":             &info.Department,
		"seniority_level":        &info.SeniorityLevel,
		"years_of_experience":    &info.YearsOfExperience,
		"work_type":              &info.WorkType,
		"location":               &info.Location,
		"salary":                 &info.Salary,
		"education_requirements": &info.EducationRequirements,
		"additional_info":        &info.AdditionalInfo,
	}
	lists := map[string]*[]string{
		"required_criteria":         &info.RequiredCriteria,
		"preferred_qualifications":  &info.PreferredQualifications,
		"skills":                    &info.Skills,
		"scope_of_responsibilities": &info.ScopeOfResponsibilities,
		"benefits":                  &info.Benefits,
	}
	return scalars, lists
}
