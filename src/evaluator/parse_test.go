package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanReply = `{
	"exam_info": {"total_parts": 1, "part_details": [{"part": "A", "questions": "1-2", "marks_each": 5, "total": 10}]},
	"questions": [
		{"question_number": 1, "part": "A", "page_number": 1, "attempted": true,
		 "student_answer_summary": "Defined photosynthesis", "marks_awarded": "4", "max_marks": "5",
		 "correct_points": ["Definition correct"], "errors": ["Missing equation"], "brief_feedback": "Good"},
		{"question_number": 2, "part": "A", "page_number": 2, "attempted": false,
		 "student_answer_summary": "Not attempted", "marks_awarded": "0", "max_marks": "5",
		 "correct_points": [], "errors": ["Question not attempted"], "brief_feedback": "Not attempted"}
	],
	"part_wise_summary": [{"part": "A", "marks_obtained": "4", "max_marks": "10", "questions_attempted": 1}],
	"total_marks_awarded": "4",
	"total_max_marks": "10",
	"percentage": "40",
	"overall_grade": "C",
	"overall_feedback": "Needs work on equations.",
	"missing_concepts": ["Chemical equation"],
	"improvement_suggestions": ["Practice balancing equations"],
	"strengths": ["Clear definitions"],
	"handwriting_notes": "Legible"
}`

func TestParseEvaluation_CleanJSON(t *testing.T) {
	eval, err := ParseEvaluation(cleanReply)
	require.NoError(t, err)

	assert.Equal(t, "4", eval.TotalMarksAwarded)
	assert.Equal(t, "C", eval.OverallGrade)
	require.Len(t, eval.Questions, 2)
	assert.True(t, eval.Questions[0].Attempted)
	assert.False(t, eval.Questions[1].Attempted)
	assert.Equal(t, 1, eval.ExamInfo.TotalParts)
}

func TestParseEvaluation_MarkdownFenced(t *testing.T) {
	eval, err := ParseEvaluation("```json\n" + cleanReply + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "40", eval.Percentage)
}

func TestParseEvaluation_BareFence(t *testing.T) {
	eval, err := ParseEvaluation("```\n" + cleanReply + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "C", eval.OverallGrade)
}

func TestParseEvaluation_ProseWrapped(t *testing.T) {
	raw := "Here is the evaluation you asked for:\n" + cleanReply + "\nLet me know if you need anything else."
	eval, err := ParseEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, "10", eval.TotalMaxMarks)
}

func TestParseEvaluation_TrailingCommas(t *testing.T) {
	raw := `{"total_marks_awarded": "7", "total_max_marks": "10", "strengths": ["Neat work",],}`
	eval, err := ParseEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, "7", eval.TotalMarksAwarded)
	assert.Equal(t, []string{"Neat work"}, eval.Strengths)
}

func TestParseEvaluation_SingleQuotes(t *testing.T) {
	raw := `{'total_marks_awarded': '9', 'total_max_marks': '10', 'overall_grade': 'A'}`
	eval, err := ParseEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, "9", eval.TotalMarksAwarded)
	assert.Equal(t, "A", eval.OverallGrade)
}

func TestParseEvaluation_NoJSON(t *testing.T) {
	_, err := ParseEvaluation("I could not read the answer sheet.")
	assert.Error(t, err)
}

func TestParseEvaluation_Unrepairable(t *testing.T) {
	_, err := ParseEvaluation(`{"questions": [{"question_number": }`)
	assert.Error(t, err)
}
