// Package answer grades submitted answers against a word's accepted side.
package answer

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

// ErrEmpty is returned when every submitted input is blank.
var ErrEmpty = errors.New("answer is empty")

// Clean trims the inputs and drops blank entries. Raw spelling is kept so
// mistakes can show exactly what the user typed.
func Clean(inputs []string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if s := strings.TrimSpace(in); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Join renders the cleaned inputs as one line.
func Join(inputs []string) string {
	return strings.Join(Clean(inputs), ", ")
}

// Accepted returns the normalized, de-duplicated accepted answers of w.
func Accepted(dir domain.Direction, w domain.Word) []string {
	return lo.Uniq(domain.NormalizeAll(w.Answers(dir)))
}

// Match reports whether every non-blank input is an accepted answer for w.
//
// A single input therefore needs to be one of the accepted answers; several
// inputs must each be accepted. Repeating an answer is allowed and covering
// every accepted answer is not required. For DEFINITIONS_TO_HEADWORD the
// only accepted answer is the headword.
func Match(dir domain.Direction, inputs []string, w domain.Word) (bool, error) {
	given := domain.NormalizeAll(inputs)
	if len(given) == 0 {
		return false, ErrEmpty
	}
	return lo.Every(Accepted(dir, w), given), nil
}
