package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Global validator instance for reuse
var validate = validator.New()

// Messages for the document-level checks.
const (
	msgNotObject       = "Invalid JSON format: document must be an object"
	msgMissingCards    = "Invalid JSON format: missing flashcards array"
	msgNoCards         = "No flashcards found in the JSON file"
	msgInvalidMetadata = "Invalid JSON format: metadata must be an object"
)

// rawFlashcard mirrors one element of the flashcards array. Pointer fields
// distinguish a missing key from a zero value.
type rawFlashcard struct {
	Question       *string           `json:"question" validate:"required"`
	Answer         *string           `json:"answer" validate:"required"`
	QuestionNumber *int              `json:"question_number" validate:"required"`
	Format         *string           `json:"format" validate:"required,oneof=multiple_choice true_false"`
	AllOptions     map[string]string `json:"all_options"`
}

// ParseDocument decodes and validates a flashcard-set document. Any
// violation of the contract is reported as a *ValidationError.
func ParseDocument(data []byte) (*domain.SetDocument, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, NewValidationError(err, "Invalid JSON: %s", err.Error())
		}
		return nil, NewValidationError(err, msgNotObject)
	}
	if top == nil {
		return nil, NewValidationError(nil, msgNotObject)
	}

	rawCards, ok := top["flashcards"]
	if !ok || !isJSONArray(rawCards) {
		return nil, NewValidationError(nil, msgMissingCards)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawCards, &elements); err != nil {
		return nil, NewValidationError(err, msgMissingCards)
	}
	if len(elements) == 0 {
		return nil, NewValidationError(domain.ErrEmptyDeck, msgNoCards)
	}

	doc := &domain.SetDocument{Flashcards: make([]domain.Flashcard, 0, len(elements))}
	for i, element := range elements {
		card, err := parseFlashcard(element)
		if err != nil {
			return nil, NewValidationError(err, "Invalid flashcard at index %d: %s", i, describe(err))
		}
		doc.Flashcards = append(doc.Flashcards, card)
	}

	if rawMeta, ok := top["metadata"]; ok && !isJSONNull(rawMeta) {
		var meta domain.SetMetadata
		if err := json.Unmarshal(rawMeta, &meta); err != nil {
			return nil, NewValidationError(err, msgInvalidMetadata)
		}
		doc.Metadata = &meta
	}

	return doc, nil
}

func parseFlashcard(data json.RawMessage) (domain.Flashcard, error) {
	if !isJSONObject(data) {
		return domain.Flashcard{}, errors.New("flashcard must be an object")
	}

	var raw rawFlashcard
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Flashcard{}, err
	}
	if err := validate.Struct(raw); err != nil {
		return domain.Flashcard{}, err
	}

	card := domain.Flashcard{
		Question:       *raw.Question,
		Answer:         *raw.Answer,
		QuestionNumber: *raw.QuestionNumber,
		Format:         domain.CardFormat(*raw.Format),
		Options:        raw.AllOptions,
	}
	if err := card.Validate(); err != nil {
		return domain.Flashcard{}, err
	}
	return card, nil
}

// describe turns decoding and validation errors into short user-facing text.
func describe(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("field %s must be of type %s", typeErr.Field, typeErr.Type.String())
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "oneof":
			return fmt.Sprintf("%s must be one of %s", field, fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", field)
		}
	}

	return err.Error()
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Question":
		return "question"
	case "Answer":
		return "answer"
	case "QuestionNumber":
		return "question_number"
	case "Format":
		return "format"
	default:
		return structField
	}
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isJSONArray(data []byte) bool  { return firstByte(data) == '[' }
func isJSONObject(data []byte) bool { return firstByte(data) == '{' }
func isJSONNull(data []byte) bool   { return bytes.Equal(bytes.TrimSpace(data), []byte("null")) }
