// Package format renders content items into posting-ready text. It is the
// only place that knows about hashtags, emoji headers and option lettering.
package format

import (
	"fmt"
	"strings"

	"github.com/castelle/tipcast/content"
)

func categoryName(category string) string {
	if category == content.CategoryReact {
		return "React"
	}
	return "JavaScript"
}

// Tip renders a tip with its daily header and hashtags.
func Tip(tip content.Tip) string {
	name := categoryName(tip.Category)
	return fmt.Sprintf("💻 Daily %s Tip 💻\n\n%s\n\n#%s #programming #webdevelopment #coding #dailytips",
		name, tip.Text, strings.ToLower(name))
}

// OptionLetter returns the letter for an option index: A, B, C, ...
func OptionLetter(i int) string {
	return string(rune('A' + i))
}

// MCQ renders a quiz question with lettered options for posting.
func MCQ(mcq content.MCQ) string {
	hashtags := "#JavaScript #WebDevelopment #CodingQuiz"
	if mcq.Category == content.CategoryReact {
		hashtags = "#React #Frontend #CodingQuiz"
	}

	var options strings.Builder
	for i, opt := range mcq.Options {
		if i > 0 {
			options.WriteByte('\n')
		}
		fmt.Fprintf(&options, "%s) %s", OptionLetter(i), opt)
	}

	return fmt.Sprintf("🧠 #DailyCodingQuiz:\n\n%s\n\n%s\n\n%s\n\nAnswer will be posted in the comments in 24 hours! Share your answer below.",
		mcq.Question, options.String(), hashtags)
}

// MCQAnswer renders the follow-up comment revealing the answer.
func MCQAnswer(mcq content.MCQ) string {
	return fmt.Sprintf("🎯 Answer to yesterday's coding quiz:\n\nThe correct answer is %s\n\n%s\n\n#CodingExplained #LearnToCode",
		mcq.CorrectAnswer, mcq.Explanation)
}

// MCQRecordContent renders the plain question-plus-options text stored in
// the ledger record.
func MCQRecordContent(mcq content.MCQ) string {
	var b strings.Builder
	b.WriteString(mcq.Question)
	b.WriteString("\n\nOptions:")
	for i, opt := range mcq.Options {
		fmt.Fprintf(&b, "\n%s. %s", OptionLetter(i), opt)
	}
	return b.String()
}
