package questionnaire

import (
	"errors"
	"strings"
)

var ErrInvalidIndex = errors.New("question index must not be negative")

// Step is the outcome of asking the sequencer for the question at an index
type Step struct {
	Question string `json:"question"`
	Index    int    `json:"index"`
	Done     bool   `json:"done"`
}

// Sequencer walks a fixed ordered list of questions
type Sequencer struct {
	questions []string
}

func NewSequencer(questions []string) *Sequencer {
	return &Sequencer{questions: append([]string(nil), questions...)}
}

// Next returns the question at index. Once index reaches the end of the list
// every question counts as answered and Done is set.
func (s *Sequencer) Next(index int) (Step, error) {
	if index < 0 {
		return Step{}, ErrInvalidIndex
	}
	if index >= len(s.questions) {
		return Step{Index: index, Done: true}, nil
	}
	return Step{Question: s.questions[index], Index: index}, nil
}

// Advance moves past the current question for any non-empty answer.
// Answer content is not validated.
func (s *Sequencer) Advance(index int, answer string) int {
	if strings.TrimSpace(answer) == "" {
		return index
	}
	return index + 1
}

func (s *Sequencer) Len() int {
	return len(s.questions)
}

func (s *Sequencer) Questions() []string {
	return append([]string(nil), s.questions...)
}
