package quiz

import (
	"fmt"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// StartInput holds the parameters of a new test.
type StartInput struct {
	Size      int
	Direction domain.Direction
	Mode      domain.InputMode
}

// Validate checks the input against the number of words available.
func (i *StartInput) Validate(available, maxSize int) error {
	var errs []domain.FieldError

	upper := min(available, maxSize)
	switch {
	case available == 0:
		errs = append(errs, domain.FieldError{Field: "size", Message: "no words available"})
	case i.Size < 1 || i.Size > upper:
		errs = append(errs, domain.FieldError{Field: "size", Message: fmt.Sprintf("must be between 1 and %d", upper)})
	}
	if !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be HEADWORD_TO_DEFINITIONS or DEFINITIONS_TO_HEADWORD"})
	}
	if !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be FREE_TEXT or MULTIPLE_CHOICE"})
	}

	return domain.Invalid(errs)
}

// SubmitInput holds the answer to the current question.
type SubmitInput struct {
	Answers []string
}
