package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCredential(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty", input: "", want: false},
		{name: "whitespace only", input: "   \t\n", want: false},
		{name: "ten characters", input: "AAAAAAAAAA", want: false},
		{name: "eleven characters", input: "AAAAAAAAAAA", want: true},
		{name: "trimmed to ten", input: "  AAAAAAAAAA  ", want: false},
		{name: "surrounding whitespace ignored", input: "  AIzaSyA-key_123  ", want: true},
		{name: "inner space", input: "AIzaSy key_12345", want: false},
		{name: "punctuation", input: "AIzaSyA.key12345", want: false},
		{name: "non ascii letter", input: "AIzaSyAkéy12345", want: false},
		{name: "typical key", input: "AIzaSyD-abcdefghijklmnopqrstuv_0123456", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateCredential(tc.input))
		})
	}
}

func TestValidateCredentialShortInputsNeverPass(t *testing.T) {
	for n := 0; n <= 10; n++ {
		assert.False(t, ValidateCredential(strings.Repeat("a", n)), "length %d", n)
	}
}

func TestValidateContent(t *testing.T) {
	assert.False(t, ValidateContent(""))
	assert.False(t, ValidateContent("      "))
	assert.False(t, ValidateContent(strings.Repeat("x", 50)))
	assert.False(t, ValidateContent("   "+strings.Repeat("x", 50)+"\n\n"))
	assert.True(t, ValidateContent(strings.Repeat("x", 51)))
	assert.True(t, ValidateContent("We need a Senior Backend Engineer. 5+ years required. Remote. Salary $150k."))
}

func TestContentStats(t *testing.T) {
	stats := ContentStats("  Senior Go engineer\nremote  ")

	assert.Equal(t, 29, stats.Characters)
	assert.Equal(t, 4, stats.Words)
	assert.Equal(t, Stats{}, ContentStats(""))
}
