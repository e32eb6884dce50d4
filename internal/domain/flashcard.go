package domain

import (
	"errors"
	"maps"
)

// CardFormat identifies how a flashcard question is posed.
type CardFormat string

// Supported card formats.
const (
	FormatMultipleChoice CardFormat = "multiple_choice"
	FormatTrueFalse      CardFormat = "true_false"
)

// Flashcard-specific validation errors
var (
	// ErrInvalidCardFormat is returned when the format is not one of the known values.
	ErrInvalidCardFormat = errors.New("invalid card format")
)

// IsValid reports whether f is a known card format.
func (f CardFormat) IsValid() bool {
	switch f {
	case FormatMultipleChoice, FormatTrueFalse:
		return true
	default:
		return false
	}
}

// Flashcard is a single question/answer pair. Flashcards are produced by the
// set loader from a JSON document and never mutated afterwards.
type Flashcard struct {
	Question       string            `json:"question"`
	Answer         string            `json:"answer"`
	QuestionNumber int               `json:"question_number"`
	Format         CardFormat        `json:"format"`
	Options        map[string]string `json:"all_options,omitempty"`
}

// Validate checks the card format. Question and answer text may be empty;
// documents only promise that the fields are present.
func (c Flashcard) Validate() error {
	if !c.Format.IsValid() {
		return NewFieldError("format", "must be multiple_choice or true_false", ErrInvalidCardFormat)
	}
	return nil
}

// Equal reports whether two flashcards hold the same content.
func (c Flashcard) Equal(other Flashcard) bool {
	return c.Question == other.Question &&
		c.Answer == other.Answer &&
		c.QuestionNumber == other.QuestionNumber &&
		c.Format == other.Format &&
		maps.Equal(c.Options, other.Options)
}
