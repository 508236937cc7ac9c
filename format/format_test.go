package format

import (
	"strings"
	"testing"

	"github.com/castelle/tipcast/content"
	"github.com/stretchr/testify/require"
)

var sampleMCQ = content.MCQ{
	ID:            7,
	Question:      "What is the output of `typeof null`?",
	Options:       []string{"null", "undefined", "object"},
	CorrectAnswer: "object",
	Explanation:   "A long-standing quirk of the language.",
	Category:      content.CategoryJavaScript,
	Difficulty:    content.DifficultyEasy,
}

func TestTipHeaderAndHashtags(t *testing.T) {
	jsBody := Tip(content.Tip{Text: "Use const.", Category: content.CategoryJavaScript})
	require.Contains(t, jsBody, "Daily JavaScript Tip")
	require.Contains(t, jsBody, "Use const.")
	require.Contains(t, jsBody, "#javascript")

	reactBody := Tip(content.Tip{Text: "Keys matter.", Category: content.CategoryReact})
	require.Contains(t, reactBody, "Daily React Tip")
	require.Contains(t, reactBody, "#react")
}

func TestOptionLetter(t *testing.T) {
	require.Equal(t, "A", OptionLetter(0))
	require.Equal(t, "B", OptionLetter(1))
	require.Equal(t, "D", OptionLetter(3))
}

func TestMCQLettersOptionsInOrder(t *testing.T) {
	body := MCQ(sampleMCQ)

	require.Contains(t, body, "A) null")
	require.Contains(t, body, "B) undefined")
	require.Contains(t, body, "C) object")
	require.Less(t, strings.Index(body, "A) null"), strings.Index(body, "C) object"))
	require.Contains(t, body, sampleMCQ.Question)
	require.Contains(t, body, "#JavaScript")
}

func TestMCQReactHashtags(t *testing.T) {
	mcq := sampleMCQ
	mcq.Category = content.CategoryReact
	require.Contains(t, MCQ(mcq), "#React #Frontend")
}

func TestMCQAnswerContainsAnswerAndExplanation(t *testing.T) {
	body := MCQAnswer(sampleMCQ)
	require.Contains(t, body, "The correct answer is object")
	require.Contains(t, body, sampleMCQ.Explanation)
}

func TestMCQRecordContent(t *testing.T) {
	record := MCQRecordContent(sampleMCQ)
	require.Contains(t, record, sampleMCQ.Question)
	require.Contains(t, record, "A. null")
	require.Contains(t, record, "C. object")
}
