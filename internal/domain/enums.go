package domain

import "strings"

// Direction selects which side of a word is the prompt and which side is
// the accepted answer set.
type Direction string

const (
	DirectionHeadwordToDefinitions Direction = "HEADWORD_TO_DEFINITIONS"
	DirectionDefinitionsToHeadword Direction = "DEFINITIONS_TO_HEADWORD"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	switch d {
	case DirectionHeadwordToDefinitions, DirectionDefinitionsToHeadword:
		return true
	}
	return false
}

// OrderMode controls how a practice queue is built from the word list.
type OrderMode string

const (
	OrderModeRandom OrderMode = "RANDOM"
	OrderModeStable OrderMode = "STABLE"
)

func (o OrderMode) String() string { return string(o) }

func (o OrderMode) IsValid() bool {
	switch o {
	case OrderModeRandom, OrderModeStable:
		return true
	}
	return false
}

// InputMode is the answer form of a test question.
type InputMode string

const (
	InputModeFreeText       InputMode = "FREE_TEXT"
	InputModeMultipleChoice InputMode = "MULTIPLE_CHOICE"
)

func (m InputMode) String() string { return string(m) }

func (m InputMode) IsValid() bool {
	switch m {
	case InputModeFreeText, InputModeMultipleChoice:
		return true
	}
	return false
}

// PracticePhase is the lifecycle state of a free-practice session.
type PracticePhase string

const (
	PracticePhaseIdle      PracticePhase = "IDLE"
	PracticePhaseActive    PracticePhase = "ACTIVE"
	PracticePhaseCompleted PracticePhase = "COMPLETED"
)

func (p PracticePhase) String() string { return string(p) }

// QuizPhase is the lifecycle state of a fixed-length test.
type QuizPhase string

const (
	QuizPhaseSetup   QuizPhase = "SETUP"
	QuizPhaseTesting QuizPhase = "TESTING"
	QuizPhaseResults QuizPhase = "RESULTS"
)

func (p QuizPhase) String() string { return string(p) }

// PartOfSpeech represents the grammatical category of a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechPhrase       PartOfSpeech = "PHRASE"
	PartOfSpeechIdiom        PartOfSpeech = "IDIOM"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechPhrase, PartOfSpeechIdiom, PartOfSpeechOther:
		return true
	}
	return false
}

// ParsePartOfSpeech accepts any casing and surrounding spaces, as found in
// imported spreadsheets.
func ParsePartOfSpeech(s string) (PartOfSpeech, bool) {
	p := PartOfSpeech(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}
