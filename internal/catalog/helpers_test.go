package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const twoCardDocument = `{"flashcards": [
  {"question": "Is water wet?", "answer": "True", "question_number": 1, "format": "true_false"},
  {"question": "Pick a prime", "answer": "B", "question_number": 2, "format": "multiple_choice",
   "all_options": {"A": "4", "B": "7"}}
]}`

const sampleCatalog = `{
  "flashcard_sets": [
    {"id": "anatomy", "filename": "anatomy.json", "title": "Anatomy", "description": "Bones",
     "category": "Medical", "difficulty": "Beginner", "card_count": 2, "created_date": "2025-01-02",
     "tags": ["medical", "beginner"]},
    {"id": "ghost", "filename": "ghost.json", "title": "Ghost", "description": "Missing file",
     "category": "Other", "difficulty": "Advanced", "card_count": 9, "created_date": "2025-01-03",
     "tags": ["other", "advanced"]}
  ],
  "categories": ["Medical", "Other"],
  "last_updated": "2025-01-03T10:00:00"
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
