package evaluator

import (
	"strings"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

const promptHeader = `You are an expert examiner evaluating a handwritten answer sheet.

CRITICAL INSTRUCTIONS:
1. You MUST evaluate EVERY SINGLE QUESTION that has been attempted in this answer sheet
2. This appears to be an exam with multiple parts - evaluate ALL parts (Part A, Part B, Part C, etc.)
3. Look through ALL pages carefully - do not miss any questions
4. Questions may be numbered as Q.1, Q1, 1., etc. - identify all formats
5. Some questions may span multiple pages - evaluate the complete answer
6. If a question is NOT ATTEMPTED (blank/crossed out), mark it as not attempted with 0 marks`

const promptSchema = `IMPORTANT: Return your evaluation ONLY as a valid JSON object with this EXACT structure:

{
    "exam_info": {
        "total_parts": 3,
        "part_details": [
            {"part": "A", "questions": "1-10", "marks_each": 3, "total": 30}
        ]
    },
    "questions": [
        {
            "question_number": 1,
            "part": "A",
            "page_number": 4,
            "attempted": true,
            "student_answer_summary": "Brief summary of what student wrote",
            "marks_awarded": "2",
            "max_marks": "3",
            "correct_points": ["Point 1 correct"],
            "errors": ["Missing concept"],
            "brief_feedback": "One line feedback"
        }
    ],
    "part_wise_summary": [
        {"part": "A", "marks_obtained": "15", "max_marks": "30", "questions_attempted": 10}
    ],
    "total_marks_awarded": "78",
    "total_max_marks": "150",
    "percentage": "52",
    "overall_grade": "B",
    "overall_feedback": "2-3 sentences overall assessment",
    "missing_concepts": ["Key concept 1 missing"],
    "improvement_suggestions": ["Study suggestion 1"],
    "strengths": ["Good point 1"],
    "handwriting_notes": "Comment on legibility"
}

CRITICAL RULES:
1. Include EVERY attempted question in the "questions" array - do not skip any
2. For questions not attempted, set "attempted": false and marks_awarded: "0"
3. Ensure question_number and page_number are accurate
4. The sum of all marks in part_wise_summary should equal total_marks_awarded
5. Return ONLY the JSON object, no other text
6. Ensure valid JSON format (double quotes, proper escaping)
7. Count all questions carefully - verify you haven't missed any`

var modeInstructions = map[models.Mode]string{
	models.ModeStandard: `EVALUATION MODE: STANDARD
- Award marks fairly with partial credit
- Focus on understanding of core concepts
- Minor spelling or presentation issues do not cost marks`,
	models.ModeStrict: `EVALUATION MODE: STRICT
- Evaluate with high standards and precision
- Require complete and accurate answers for full marks
- Deduct marks for any errors, omissions, or unclear explanations
- No partial credit for vague or incomplete answers`,
	models.ModeRange: `EVALUATION MODE: RANGE
- Provide a mark RANGE instead of a single value, e.g. "6-8"
- Lower bound: minimum marks (strict interpretation)
- Upper bound: maximum marks (generous interpretation)
- Use the range format for marks_awarded, part totals and total_marks_awarded`,
}

// BuildPrompt assembles the examiner prompt for the given mode, appending the
// user-supplied marking scheme when present. Pure: the prompt depends only on
// its arguments, which keeps prompts (and therefore remote replies) repeatable.
func BuildPrompt(mode models.Mode, criteria string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")
	b.WriteString(modeInstructions[mode])
	b.WriteString("\n\n")
	b.WriteString(promptSchema)
	if criteria != "" {
		b.WriteString("\n\nMARKING SCHEME PROVIDED:\n")
		b.WriteString(criteria)
	}
	return b.String()
}
