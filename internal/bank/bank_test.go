package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "questions": [
    {"question": "2 + 2 = ?", "options": ["3", "4", "5"], "correct": "4"},
    {"question": "Capital of France?", "options": ["Paris", "Rome"], "correct": "Paris"}
  ]
}`

const sampleYAML = `questions:
  - question: "2 + 2 = ?"
    options: ["3", "4", "5"]
    correct: "4"
  - question: Capital of France?
    options:
      - Paris
      - Rome
    correct: Paris
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_JSON(t *testing.T) {
	b, err := Load(writeFile(t, "bank.json", sampleJSON))
	require.NoError(t, err)

	require.Equal(t, 2, b.Len())
	q, ok := b.Question(1)
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, "Capital of France?", q.Prompt)
	assert.Equal(t, []string{"Paris", "Rome"}, q.Options)
	assert.Equal(t, "Paris", q.Correct)
	assert.Equal(t, 0, q.CorrectIndex())
}

func TestLoad_YAML(t *testing.T) {
	b, err := Load(writeFile(t, "bank.yaml", sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())

	q, _ := b.Question(0)
	assert.Equal(t, "2 + 2 = ?", q.Prompt)
	assert.Equal(t, 1, q.CorrectIndex())
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"not json", "bank.json", "{nope"},
		{"missing questions", "bank.json", `{"items": []}`},
		{"questions not array", "bank.json", `{"questions": {}}`},
		{"one option", "bank.json", `{"questions": [{"question": "q", "options": ["a"], "correct": "a"}]}`},
		{"missing correct", "bank.json", `{"questions": [{"question": "q", "options": ["a", "b"]}]}`},
		{"numeric option", "bank.json", `{"questions": [{"question": "q", "options": ["a", 2], "correct": "a"}]}`},
		{"bad yaml", "bank.yml", "questions: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoadFailure), "want ErrLoadFailure, got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestParse_EmptyBankIsValid(t *testing.T) {
	b, err := Parse("inline", []byte(`{"questions": []}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "inline", b.Source())
}

func TestBank_QuestionsReturnsCopy(t *testing.T) {
	b, err := Parse("inline", []byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	qs := b.Questions()
	qs[0].Prompt = "changed"

	q, _ := b.Question(0)
	assert.Equal(t, "2 + 2 = ?", q.Prompt)
}

func TestBank_QuestionOutOfRange(t *testing.T) {
	b := New("inline", nil)
	_, ok := b.Question(0)
	assert.False(t, ok)
	_, ok = b.Question(-1)
	assert.False(t, ok)
}

func TestQuestion_OptionText(t *testing.T) {
	q := Question{Options: []string{"a", "b"}}
	assert.Equal(t, "b", q.OptionText(1))
	assert.Equal(t, "", q.OptionText(2))
	assert.Equal(t, "", q.OptionText(-1))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("x.YAML"))
	assert.Equal(t, FormatYAML, FormatFor("x.yml"))
	assert.Equal(t, FormatJSON, FormatFor("x.json"))
	assert.Equal(t, FormatJSON, FormatFor("AGAMA"))
}
