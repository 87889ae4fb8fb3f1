package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestFieldsMatchJobInformation(t *testing.T) {
	typ := reflect.TypeOf(JobInformation{})
	require.Equal(t, typ.NumField(), len(Fields))

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		name := strings.Split(sf.Tag.Get("json"), ",")[0]

		assert.Equal(t, Fields[i].Name, name, "field %d", i)
		assert.Equal(t, sf.Type.Kind() == reflect.Slice, Fields[i].List, "list flag for %s", name)
	}
}

func TestResponseSchema(t *testing.T) {
	schema := ResponseSchema()

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, FieldNames(), schema.PropertyOrdering)
	assert.Empty(t, schema.Required)
	require.Len(t, schema.Properties, len(Fields))

	title := schema.Properties["job_title"]
	require.NotNil(t, title)
	assert.Equal(t, genai.TypeString, title.Type)
	require.NotNil(t, title.Nullable)
	assert.True(t, *title.Nullable)

	skills := schema.Properties["skills"]
	require.NotNil(t, skills)
	assert.Equal(t, genai.TypeArray, skills.Type)
	require.NotNil(t, skills.Items)
	assert.Equal(t, genai.TypeString, skills.Items.Type)
}

func TestResponseSchemaIsFreshPerCall(t *testing.T) {
	a := ResponseSchema()
	a.Properties["salary"].Description = "changed"

	b := ResponseSchema()
	assert.NotEqual(t, "changed", b.Properties["salary"].Description)
}

func TestSummaryAndNormalized(t *testing.T) {
	info := JobInformation{
		Skills:           []string{"Go", "SQL"},
		RequiredCriteria: []string{"5 years"},
	}

	assert.Equal(t, Summary{Skills: 2, Requirements: 1}, info.Summary())

	n := info.Normalized()
	assert.NotNil(t, n.Benefits)
	assert.Empty(t, n.Benefits)
	assert.Nil(t, info.Benefits)
	assert.Equal(t, []string{"Go", "SQL"}, n.Skills)
}

func TestOptionalHelpers(t *testing.T) {
	assert.False(t, Present(nil))
	assert.False(t, Present(String("")))
	assert.True(t, Present(String("Remote")))
	assert.Equal(t, "", Value(nil))
	assert.Equal(t, "Remote", Value(String("Remote")))
}

func TestStatusMarshalJSON(t *testing.T) {
	b, err := StatusFailed.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"failed"`, string(b))
	assert.Equal(t, "unknown", Status(42).String())
}
