package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/phrazzld/scry-study/internal/domain"
)

const document = `{"flashcards": [
  {"question": "Q1", "answer": "True", "question_number": 1, "format": "true_false"},
  {"question": "Q2", "answer": "B", "question_number": 2, "format": "multiple_choice", "all_options": {"A": "x", "B": "y"}}
]}`

// execute runs setctl with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAddAndList(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	src := writeDoc(t, t.TempDir(), "cell_biology.json", document)

	out, err := execute(t, "add", src, "--dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Added flashcard set: Cell Biology")
	assert.Contains(t, out, "Cards: 2")

	out, err = execute(t, "add", src, "Cells", "All about cells", "Science", "Advanced", "--dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated flashcard set: Cells")

	out, err = execute(t, "list", "--dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "cell_biology")
	assert.Contains(t, out, "Science")

	out, err = execute(t, "list", "--json", "--dir", dataDir)
	require.NoError(t, err)
	var sets []domain.SetDescriptor
	require.NoError(t, json.Unmarshal([]byte(out), &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"science", "advanced"}, sets[0].Tags)

	out, err = execute(t, "list", "--yaml", "--dir", dataDir)
	require.NoError(t, err)
	var fromYAML []domain.SetDescriptor
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	assert.Equal(t, sets, fromYAML)

	out, err = execute(t, "list", "--tag", "beginner", "--dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No flashcard sets found.")

	_, err = execute(t, "list", "--json", "--yaml", "--dir", dataDir)
	assert.ErrorContains(t, err, "none of the others can be")
}

func TestAddRejectsInvalidDocument(t *testing.T) {
	dataDir := t.TempDir()
	src := writeDoc(t, t.TempDir(), "empty.json", `{"flashcards": []}`)

	_, err := execute(t, "add", src, "--dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No flashcards found in the JSON file")

	_, err = execute(t, "add")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.json", document)
	bad := writeDoc(t, dir, "bad.json", `{"flashcards": [{"question": "Q"}]}`)

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 valid flashcards")

	_, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid flashcard at index 0")
}

func TestCategories(t *testing.T) {
	out, err := execute(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "  - Medical")
	assert.Contains(t, out, "Difficulty levels: Beginner, Intermediate, Advanced")
}

func TestDiscover(t *testing.T) {
	dataDir := t.TempDir()

	out, err := execute(t, "discover", "--dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "All documents are catalogued.")

	src := writeDoc(t, dataDir, "known.json", document)
	_, err = execute(t, "add", src, "--dir", dataDir)
	require.NoError(t, err)
	writeDoc(t, dataDir, "nested/new.json", document)

	out, err = execute(t, "discover", "--dir", dataDir)
	require.NoError(t, err)
	assert.Equal(t, "nested/new.json\n", out)
}
