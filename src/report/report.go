// Package report renders cached grading results as downloadable text or
// Markdown. Rendering is a pure projection of an entry: re-rendering the same
// entry always produces the same report.
package report

import (
	"fmt"
	"strings"

	"www.github.com/Wanderer0074348/SheetGrader/src/cache"
)

const divider = "======================================================================"

// RenderText formats an entry as a plain-text evaluation report.
func RenderText(entry cache.Entry) string {
	var b strings.Builder

	b.WriteString("HANDWRITTEN ANSWER SHEET EVALUATION\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "File: %s\n", entry.Filename)
	fmt.Fprintf(&b, "Evaluation Mode: %s\n", strings.ToUpper(string(entry.Mode)))
	fmt.Fprintf(&b, "Model: %s\n\n", entry.ModelUsed)
	b.WriteString(divider + "\n\n")

	writeBody(&b, entry, textStyle{})

	b.WriteString("\n" + divider + "\n")
	fmt.Fprintf(&b, "Note: this evaluation was generated with %s mode.\n", strings.ToUpper(string(entry.Mode)))
	b.WriteString("Same file uploaded with same settings produces consistent results.\n")

	return b.String()
}

// RenderMarkdown formats an entry as a Markdown evaluation report.
func RenderMarkdown(entry cache.Entry) string {
	var b strings.Builder

	b.WriteString("# Answer Sheet Evaluation Report\n\n")
	fmt.Fprintf(&b, "**File:** %s  \n", entry.Filename)
	fmt.Fprintf(&b, "**Evaluation Mode:** %s  \n", strings.ToUpper(string(entry.Mode)))
	fmt.Fprintf(&b, "**Model:** %s\n\n---\n\n", entry.ModelUsed)

	writeBody(&b, entry, textStyle{markdown: true})

	fmt.Fprintf(&b, "\n---\n*Generated with %s evaluation mode. Same file + same mode + same criteria = consistent results.*\n",
		strings.ToUpper(string(entry.Mode)))

	return b.String()
}

type textStyle struct {
	markdown bool
}

func (s textStyle) heading(b *strings.Builder, text string) {
	if s.markdown {
		fmt.Fprintf(b, "## %s\n\n", text)
		return
	}
	fmt.Fprintf(b, "%s\n%s\n", text, strings.Repeat("-", len(text)))
}

func (s textStyle) item(b *strings.Builder, text string) {
	if s.markdown {
		fmt.Fprintf(b, "- %s\n", text)
		return
	}
	fmt.Fprintf(b, "  * %s\n", text)
}

func writeBody(b *strings.Builder, entry cache.Entry, style textStyle) {
	eval := entry.Evaluation
	if eval == nil {
		b.WriteString(entry.RawResponse)
		b.WriteString("\n")
		return
	}

	style.heading(b, "Total Score")
	fmt.Fprintf(b, "%s / %s", eval.TotalMarksAwarded, eval.TotalMaxMarks)
	if eval.Percentage != "" {
		fmt.Fprintf(b, "  (%s%%)", eval.Percentage)
	}
	if eval.OverallGrade != "" {
		fmt.Fprintf(b, "  Grade: %s", eval.OverallGrade)
	}
	b.WriteString("\n\n")

	if len(eval.PartWiseSummary) > 0 {
		style.heading(b, "Part-wise Breakdown")
		for _, part := range eval.PartWiseSummary {
			style.item(b, fmt.Sprintf("Part %s: %s/%s (%d attempted)",
				part.Part, part.MarksObtained, part.MaxMarks, part.QuestionsAttempted))
		}
		b.WriteString("\n")
	}

	if len(eval.Questions) > 0 {
		style.heading(b, "Question-wise Marks")
		for _, q := range eval.Questions {
			if !q.Attempted {
				style.item(b, fmt.Sprintf("Q%d: N.A. (not attempted)", q.QuestionNumber))
				continue
			}
			line := fmt.Sprintf("Q%d: %s/%s", q.QuestionNumber, q.MarksAwarded, q.MaxMarks)
			if q.BriefFeedback != "" {
				line += " - " + q.BriefFeedback
			}
			style.item(b, line)
		}
		b.WriteString("\n")
	}

	if eval.OverallFeedback != "" {
		style.heading(b, "Overall Feedback")
		b.WriteString(eval.OverallFeedback)
		b.WriteString("\n\n")
	}

	writeList(b, style, "Missing Concepts", eval.MissingConcepts)
	writeList(b, style, "Improvement Suggestions", eval.ImprovementSuggestions)
	writeList(b, style, "Strengths", eval.Strengths)

	if eval.HandwritingNotes != "" {
		style.heading(b, "Handwriting")
		b.WriteString(eval.HandwritingNotes)
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, style textStyle, title string, items []string) {
	if len(items) == 0 {
		return
	}
	style.heading(b, title)
	for _, item := range items {
		style.item(b, item)
	}
	b.WriteString("\n")
}

// Filename suggests a download filename for the rendered report.
func Filename(entry cache.Entry, format string) string {
	base := strings.TrimSuffix(entry.Filename, ".pdf")
	if base == "" {
		base = "answer_sheet"
	}
	ext := "txt"
	if format == "markdown" {
		ext = "md"
	}
	return fmt.Sprintf("evaluation_%s_%s.%s", base, entry.Mode, ext)
}
