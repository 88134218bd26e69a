package practice

import (
	"strings"
	"unicode/utf8"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

const maxAnswerLength = 500

// CheckInput holds the answers submitted for the current card.
type CheckInput struct {
	Answers []string
}

// Validate checks all fields and collects all errors.
func (i *CheckInput) Validate() error {
	var errs []domain.FieldError

	nonBlank := 0
	for _, a := range i.Answers {
		if strings.TrimSpace(a) != "" {
			nonBlank++
		}
		if utf8.RuneCountInString(a) > maxAnswerLength {
			errs = append(errs, domain.FieldError{Field: "answers", Message: "each answer must be at most 500 characters"})
			break
		}
	}
	if nonBlank == 0 {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "at least one non-empty answer required"})
	}

	return domain.Invalid(errs)
}

// SettingsInput changes practice preferences. Nil fields are left as they are.
type SettingsInput struct {
	Direction    *domain.Direction
	Order        *domain.OrderMode
	AllowReguess *bool
}

// Validate checks all fields and collects all errors.
func (i *SettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.Direction == nil && i.Order == nil && i.AllowReguess == nil {
		errs = append(errs, domain.FieldError{Field: "settings", Message: "at least one field required"})
	}
	if i.Direction != nil && !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be HEADWORD_TO_DEFINITIONS or DEFINITIONS_TO_HEADWORD"})
	}
	if i.Order != nil && !i.Order.IsValid() {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be RANDOM or STABLE"})
	}

	return domain.Invalid(errs)
}
