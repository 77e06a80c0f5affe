package models

import (
	"fmt"
	"time"
)

// Mode selects how strictly the examiner prompt scores answers.
type Mode string

const (
	ModeStandard Mode = "standard" // balanced, partial credit
	ModeStrict   Mode = "strict"   // deductions for any error or omission
	ModeRange    Mode = "range"    // min-max mark range instead of a single value
)

// ParseMode validates a user-supplied mode string. Empty defaults to standard.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard, ModeStrict, ModeRange:
		return Mode(s), nil
	case "":
		return ModeStandard, nil
	default:
		return "", fmt.Errorf("unknown evaluation mode %q", s)
	}
}

// GradingRequest is the tuple submitted for remote evaluation: the uploaded
// document, the evaluation mode and the optional free-text marking criteria.
type GradingRequest struct {
	Document []byte
	Filename string
	Mode     Mode
	Criteria string
}

type PartDetail struct {
	Part      string `json:"part"`
	Questions string `json:"questions"`
	MarksEach int    `json:"marks_each"`
	Total     int    `json:"total"`
}

type ExamInfo struct {
	TotalParts  int          `json:"total_parts"`
	PartDetails []PartDetail `json:"part_details"`
}

type QuestionResult struct {
	QuestionNumber       int      `json:"question_number"`
	Part                 string   `json:"part"`
	PageNumber           int      `json:"page_number"`
	Attempted            bool     `json:"attempted"`
	StudentAnswerSummary string   `json:"student_answer_summary"`
	MarksAwarded         string   `json:"marks_awarded"` // string: range mode returns e.g. "6-8"
	MaxMarks             string   `json:"max_marks"`
	CorrectPoints        []string `json:"correct_points"`
	Errors               []string `json:"errors"`
	BriefFeedback        string   `json:"brief_feedback"`
}

type PartSummary struct {
	Part               string `json:"part"`
	MarksObtained      string `json:"marks_obtained"`
	MaxMarks           string `json:"max_marks"`
	QuestionsAttempted int    `json:"questions_attempted"`
}

// Evaluation is the structured grading result parsed from the model reply.
type Evaluation struct {
	ExamInfo               ExamInfo         `json:"exam_info"`
	Questions              []QuestionResult `json:"questions"`
	PartWiseSummary        []PartSummary    `json:"part_wise_summary"`
	TotalMarksAwarded      string           `json:"total_marks_awarded"`
	TotalMaxMarks          string           `json:"total_max_marks"`
	Percentage             string           `json:"percentage"`
	OverallGrade           string           `json:"overall_grade"`
	OverallFeedback        string           `json:"overall_feedback"`
	MissingConcepts        []string         `json:"missing_concepts"`
	ImprovementSuggestions []string         `json:"improvement_suggestions"`
	Strengths              []string         `json:"strengths"`
	HandwritingNotes       string           `json:"handwriting_notes"`
}

type EvaluationResponse struct {
	Evaluation  *Evaluation   `json:"evaluation"`
	Filename    string        `json:"filename"`
	Mode        Mode          `json:"mode"`
	ModelUsed   string        `json:"model_used"`
	CacheKey    string        `json:"cache_key"`
	CacheHit    bool          `json:"cache_hit"`
	Latency     time.Duration `json:"latency"`
	Timestamp   time.Time     `json:"timestamp"`
	CostMetrics *CostMetrics  `json:"cost_metrics,omitempty"`
}

// EvaluationSummary is the list-view projection of a cached entry.
type EvaluationSummary struct {
	CacheKey          string    `json:"cache_key"`
	Filename          string    `json:"filename"`
	Mode              Mode      `json:"mode"`
	TotalMarksAwarded string    `json:"total_marks_awarded"`
	TotalMaxMarks     string    `json:"total_max_marks"`
	OverallGrade      string    `json:"overall_grade"`
	CreatedAt         time.Time `json:"created_at"`
}

type CostMetrics struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	Cost         float64 `json:"cost"`           // actual cost in USD
	SavedByCache float64 `json:"saved_by_cache"` // cost avoided on a cache hit
	Model        string  `json:"model"`          // specific model used
}

// Session is the metadata kept alongside (not inside) a per-session result cache.
type Session struct {
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeen    time.Time `json:"last_seen"`
	Evaluations int       `json:"evaluations"` // remote calls performed, cache hits excluded
}
