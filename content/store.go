package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	jsTipsFile    = "javascript_tips.json"
	reactTipsFile = "react_tips.json"
	mcqFile       = "mcq_questions.json"
)

// Store loads the content library from JSON files under a data directory.
// Missing files are created from the compiled-in defaults on first run.
type Store struct {
	dataDir string

	jsTips    []Tip
	reactTips []Tip
	mcqs      []MCQ
}

func NewStore(dataDir string) (*Store, error) {
	s := &Store{dataDir: dataDir}

	if err := s.ensureDataFiles(); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureDataFiles() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	defaults := map[string]any{
		jsTipsFile:    defaultJavaScriptTips,
		reactTipsFile: defaultReactTips,
		mcqFile:       defaultMCQs,
	}

	for name, content := range defaults {
		path := filepath.Join(s.dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}

		data, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write default %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) load() error {
	jsTexts, err := readStringList(filepath.Join(s.dataDir, jsTipsFile))
	if err != nil {
		return fmt.Errorf("failed to load javascript tips: %w", err)
	}
	reactTexts, err := readStringList(filepath.Join(s.dataDir, reactTipsFile))
	if err != nil {
		return fmt.Errorf("failed to load react tips: %w", err)
	}
	if len(jsTexts) == 0 || len(reactTexts) == 0 {
		return fmt.Errorf("tip pools must not be empty (javascript: %d, react: %d)", len(jsTexts), len(reactTexts))
	}
	if err := checkDuplicateTips(CategoryJavaScript, jsTexts); err != nil {
		return err
	}
	if err := checkDuplicateTips(CategoryReact, reactTexts); err != nil {
		return err
	}

	s.jsTips = make([]Tip, 0, len(jsTexts))
	for _, text := range jsTexts {
		s.jsTips = append(s.jsTips, Tip{Text: text, Category: CategoryJavaScript})
	}
	s.reactTips = make([]Tip, 0, len(reactTexts))
	for _, text := range reactTexts {
		s.reactTips = append(s.reactTips, Tip{Text: text, Category: CategoryReact})
	}

	data, err := os.ReadFile(filepath.Join(s.dataDir, mcqFile))
	if err != nil {
		return fmt.Errorf("failed to load mcq questions: %w", err)
	}
	var mcqs []MCQ
	if err := json.Unmarshal(data, &mcqs); err != nil {
		return fmt.Errorf("failed to parse mcq questions: %w", err)
	}

	seen := make(map[int]bool, len(mcqs))
	for _, mcq := range mcqs {
		if err := mcq.Validate(); err != nil {
			return err
		}
		if seen[mcq.ID] {
			return fmt.Errorf("duplicate mcq id %d", mcq.ID)
		}
		seen[mcq.ID] = true
	}
	s.mcqs = mcqs

	return nil
}

// Tips are identified by their text in the rotation set, so duplicate
// entries in a pool would never all be consumable.
func checkDuplicateTips(category string, texts []string) error {
	seen := make(map[string]bool, len(texts))
	for _, text := range texts {
		if seen[text] {
			return fmt.Errorf("duplicate %s tip %q", category, text)
		}
		seen[text] = true
	}
	return nil
}

func readStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Tips returns the tip pool for a category. The returned slice is shared;
// callers must not mutate it.
func (s *Store) Tips(category string) []Tip {
	switch category {
	case CategoryJavaScript:
		return s.jsTips
	case CategoryReact:
		return s.reactTips
	}
	return nil
}

// MCQs returns every question in the library.
func (s *Store) MCQs() []MCQ {
	return s.mcqs
}

// MCQByID finds a question by its stable id.
func (s *Store) MCQByID(id int) (MCQ, bool) {
	for _, mcq := range s.mcqs {
		if mcq.ID == id {
			return mcq, true
		}
	}
	return MCQ{}, false
}

// MCQsByCategory filters the library by category.
func (s *Store) MCQsByCategory(category string) []MCQ {
	var result []MCQ
	for _, mcq := range s.mcqs {
		if mcq.Category == category {
			result = append(result, mcq)
		}
	}
	return result
}
