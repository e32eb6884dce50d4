package domain

import (
	"slices"
	"strings"
)

// SetMetadata carries optional provenance for a flashcard set, typically
// written by the tool that converted a source document into cards. It is
// informational only.
type SetMetadata struct {
	SourcePDF           *string `json:"source_pdf,omitempty"`
	TotalPages          *int    `json:"total_pages,omitempty"`
	FormatType          *string `json:"format_type,omitempty"`
	QuestionsExtracted  *int    `json:"questions_extracted,omitempty"`
	AnswerKeyEntries    *int    `json:"answer_key_entries,omitempty"`
	ValidFlashcards     *int    `json:"valid_flashcards,omitempty"`
	ConversionTimestamp *string `json:"conversion_timestamp,omitempty"`
}

// Clone returns a copy of m that shares no pointers with it. A nil m
// clones to nil.
func (m *SetMetadata) Clone() *SetMetadata {
	if m == nil {
		return nil
	}
	return &SetMetadata{
		SourcePDF:           clonePtr(m.SourcePDF),
		TotalPages:          clonePtr(m.TotalPages),
		FormatType:          clonePtr(m.FormatType),
		QuestionsExtracted:  clonePtr(m.QuestionsExtracted),
		AnswerKeyEntries:    clonePtr(m.AnswerKeyEntries),
		ValidFlashcards:     clonePtr(m.ValidFlashcards),
		ConversionTimestamp: clonePtr(m.ConversionTimestamp),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// SetDescriptor identifies a loadable flashcard set in the catalog.
type SetDescriptor struct {
	ID          string   `json:"id"           yaml:"id"`
	Filename    string   `json:"filename"     yaml:"filename"`
	Title       string   `json:"title"        yaml:"title"`
	Description string   `json:"description"  yaml:"description"`
	Category    string   `json:"category"     yaml:"category"`
	Difficulty  string   `json:"difficulty"   yaml:"difficulty"`
	CardCount   int      `json:"card_count"   yaml:"card_count"`
	CreatedDate string   `json:"created_date" yaml:"created_date"`
	Tags        []string `json:"tags"         yaml:"tags"`
}

// Clone returns a copy of d with its own Tags slice. A nil d clones to nil.
func (d *SetDescriptor) Clone() *SetDescriptor {
	if d == nil {
		return nil
	}
	out := *d
	out.Tags = slices.Clone(d.Tags)
	return &out
}

// HasTag reports whether the descriptor carries tag, ignoring case.
func (d SetDescriptor) HasTag(tag string) bool {
	return slices.ContainsFunc(d.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// NormalizeTags lowercases tags and removes duplicates and blanks while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SetDocument is a decoded flashcard-set document.
type SetDocument struct {
	Flashcards []Flashcard  `json:"flashcards"`
	Metadata   *SetMetadata `json:"metadata,omitempty"`
}

// Catalog is the decoded sets-metadata.json document listing every known set.
type Catalog struct {
	FlashcardSets []SetDescriptor `json:"flashcard_sets"`
	Categories    []string        `json:"categories,omitempty"`
	LastUpdated   string          `json:"last_updated,omitempty"`
}

// FindByFilename returns the descriptor whose filename matches, or
// ErrSetNotFound.
func (c *Catalog) FindByFilename(filename string) (*SetDescriptor, error) {
	for i := range c.FlashcardSets {
		if c.FlashcardSets[i].Filename == filename {
			d := c.FlashcardSets[i]
			return &d, nil
		}
	}
	return nil, ErrSetNotFound
}

// FindByID returns the descriptor with the given ID, or ErrSetNotFound.
func (c *Catalog) FindByID(id string) (*SetDescriptor, error) {
	for i := range c.FlashcardSets {
		if c.FlashcardSets[i].ID == id {
			d := c.FlashcardSets[i]
			return &d, nil
		}
	}
	return nil, ErrSetNotFound
}
