package vocabulary

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const (
	maxHeadwordLen    = 500
	maxDefinitionLen  = 500
	maxDescriptionLen = 5000
)

// CreateInput holds the fields of a new word.
type CreateInput struct {
	Headword     string
	Definitions  []string
	Description  *string
	PartOfSpeech *domain.PartOfSpeech
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate(maxDefinitions int) error {
	errs := validateWord(i.Headword, i.Definitions, i.Description, i.PartOfSpeech, maxDefinitions)
	return domain.Invalid(errs)
}

// UpdateInput replaces the editable fields of an existing word.
type UpdateInput struct {
	WordID       uuid.UUID
	Headword     string
	Definitions  []string
	Description  *string
	PartOfSpeech *domain.PartOfSpeech
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate(maxDefinitions int) error {
	var errs []domain.FieldError
	if i.WordID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	errs = append(errs, validateWord(i.Headword, i.Definitions, i.Description, i.PartOfSpeech, maxDefinitions)...)
	return domain.Invalid(errs)
}

// ListInput holds paging parameters. Zero Limit means the configured default.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i *ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	return domain.Invalid(errs)
}

func validateWord(headword string, definitions []string, description *string, pos *domain.PartOfSpeech, maxDefinitions int) []domain.FieldError {
	var errs []domain.FieldError

	switch {
	case strings.TrimSpace(headword) == "":
		errs = append(errs, domain.FieldError{Field: "headword", Message: "required"})
	case utf8.RuneCountInString(headword) > maxHeadwordLen:
		errs = append(errs, domain.FieldError{Field: "headword", Message: fmt.Sprintf("too long (max %d)", maxHeadwordLen)})
	}

	if len(definitions) == 0 {
		errs = append(errs, domain.FieldError{Field: "definitions", Message: "at least one required"})
	} else if len(definitions) > maxDefinitions {
		errs = append(errs, domain.FieldError{Field: "definitions", Message: fmt.Sprintf("too many (max %d)", maxDefinitions)})
	}
	for di, d := range definitions {
		switch {
		case strings.TrimSpace(d) == "":
			errs = append(errs, domain.FieldError{Field: fieldIndex("definitions", di), Message: "required"})
		case utf8.RuneCountInString(d) > maxDefinitionLen:
			errs = append(errs, domain.FieldError{Field: fieldIndex("definitions", di), Message: fmt.Sprintf("too long (max %d)", maxDefinitionLen)})
		}
	}

	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("too long (max %d)", maxDescriptionLen)})
	}
	if pos != nil && !pos.IsValid() {
		errs = append(errs, domain.FieldError{Field: "part_of_speech", Message: "invalid value"})
	}
	return errs
}

func fieldIndex(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

// cleanDefinitions trims every definition and drops duplicates that differ
// only in case or spacing, keeping the first spelling.
func cleanDefinitions(defs []string) []string {
	seen := make(map[string]struct{}, len(defs))
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		d = strings.TrimSpace(d)
		n := domain.NormalizeText(d)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, d)
	}
	return out
}
