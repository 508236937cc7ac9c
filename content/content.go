package content

import (
	"fmt"
)

const (
	CategoryJavaScript = "javascript"
	CategoryReact      = "react"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Tip is a short posting-ready text in one of the two tip pools.
type Tip struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// MCQ is a multiple-choice quiz question. Immutable at runtime; only the
// ledger records which questions have been posted.
type MCQ struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
}

// Validate checks the structural invariants of a question.
func (m MCQ) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("mcq id must be positive, got %d", m.ID)
	}
	if m.Question == "" {
		return fmt.Errorf("mcq %d has an empty question", m.ID)
	}
	if len(m.Options) < 2 {
		return fmt.Errorf("mcq %d needs at least 2 options, got %d", m.ID, len(m.Options))
	}
	if m.Category != CategoryJavaScript && m.Category != CategoryReact {
		return fmt.Errorf("mcq %d has unknown category %q", m.ID, m.Category)
	}
	switch m.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("mcq %d has unknown difficulty %q", m.ID, m.Difficulty)
	}

	for _, opt := range m.Options {
		if opt == m.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("mcq %d correct answer is not one of its options", m.ID)
}
