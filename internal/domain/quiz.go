package domain

import (
	"sort"
	"time"
)

// DefaultTestTitle is used when a record is uploaded without a title.
const DefaultTestTitle = "Untitled Test"

// DefaultCorrectAnswer is the fallback letter for questions without an explicit answer.
const DefaultCorrectAnswer = "a"

// Question is one multiple-choice item of a parsed quiz.
type Question struct {
	Number        int      `json:"number"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Explanation   string   `json:"explanation"`
	CorrectAnswer *string  `json:"correct_answer"`
}

// QuizDocument is the structured output of parsing a practice-test document.
type QuizDocument struct {
	Title     *string    `json:"title"`
	Questions []Question `json:"questions"`
}

// QuizRecord is a stored upload together with its parsed document.
type QuizRecord struct {
	ID         string
	Title      string
	DocFile    string
	ParsedJSON *QuizDocument
	UploadedAt time.Time
	UpdatedAt  time.Time
}

// NewQuizRecord creates an unparsed record. An empty title falls back to DefaultTestTitle.
func NewQuizRecord(id, title string) *QuizRecord {
	if title == "" {
		title = DefaultTestTitle
	}
	now := time.Now().UTC()
	return &QuizRecord{
		ID:         id,
		Title:      title,
		UploadedAt: now,
		UpdatedAt:  now,
	}
}

// SubmittedAnswers maps a 0-based question index, as a decimal string, to a letter.
type SubmittedAnswers map[string]string

// AnswerKey maps a 0-based question index to the expected letter.
type AnswerKey map[int]string

// Indexes returns the key's question indexes in ascending order.
func (k AnswerKey) Indexes() []int {
	idx := make([]int, 0, len(k))
	for i := range k {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// QuestionResult is the per-question outcome of grading.
type QuestionResult struct {
	QuestionNumber int    `json:"question_number"`
	IsCorrect      bool   `json:"is_correct"`
	CorrectAnswer  string `json:"correct_answer"`
	UserAnswer     string `json:"user_answer"`
}

// GradeReport is the scored comparison of submitted answers against a quiz.
type GradeReport struct {
	Score   int              `json:"score"`
	Total   int              `json:"total"`
	Percent int              `json:"percent"`
	Results []QuestionResult `json:"results"`
}

// QuizRecordPatch carries the fields of an update. Nil fields are left untouched.
type QuizRecordPatch struct {
	Title      *string
	ParsedJSON *QuizDocumentPatch
}

// QuizDocumentPatch replaces the stored document's title and/or questions wholesale.
type QuizDocumentPatch struct {
	Title     *string
	Questions *[]Question
}

// Empty reports whether the patch carries no fields.
func (p *QuizDocumentPatch) Empty() bool {
	return p == nil || (p.Title == nil && p.Questions == nil)
}
