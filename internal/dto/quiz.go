package dto

import (
	"time"

	"word-quiz/internal/domain"
)

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code,omitempty"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

// QuizDocumentResponse is a parsed quiz
// @Description Parsed quiz document
type QuizDocumentResponse struct {
	Title     *string           `json:"title"`
	Questions []domain.Question `json:"questions"`
}

// GradeTestRequest grades answers against a stored record
// @Description Request body for grading a stored test
type GradeTestRequest struct {
	TestID  string            `json:"test_id"`
	Answers map[string]string `json:"answers"`
}

// GradeKeyRequest grades answers against the configured answer key
type GradeKeyRequest struct {
	Answers map[string]string `json:"answers"`
}

// GradeResponse is a scored answer set
// @Description Grade report
type GradeResponse struct {
	Score   int                     `json:"score"`
	Total   int                     `json:"total"`
	Percent int                     `json:"percent"`
	Results []domain.QuestionResult `json:"results"`
}

// UpdateQuizDocumentRequest carries replacement document fields
type UpdateQuizDocumentRequest struct {
	Title     *string            `json:"title,omitempty"`
	Questions *[]domain.Question `json:"questions,omitempty"`
}

// UpdateQuizRecordRequest is the body of PUT/PATCH /tests/:id
// @Description Fields to replace on a stored test
type UpdateQuizRecordRequest struct {
	Title      *string                    `json:"title,omitempty"`
	ParsedJSON *UpdateQuizDocumentRequest `json:"parsed_json,omitempty"`
}

// QuizRecordResponse represents a stored test in the API response
// @Description Stored test with its parsed document
type QuizRecordResponse struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	DocFile    string                `json:"doc_file"`
	ParsedJSON *QuizDocumentResponse `json:"parsed_json"`
	UploadedAt time.Time             `json:"uploaded_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// CSRFResponse confirms the CSRF cookie was issued
type CSRFResponse struct {
	Detail string `json:"detail"`
}

// ToPatch converts the request into a domain patch.
func (r *UpdateQuizRecordRequest) ToPatch() domain.QuizRecordPatch {
	patch := domain.QuizRecordPatch{Title: r.Title}
	if r.ParsedJSON != nil {
		patch.ParsedJSON = &domain.QuizDocumentPatch{
			Title:     r.ParsedJSON.Title,
			Questions: r.ParsedJSON.Questions,
		}
	}
	return patch
}

func NewQuizDocumentResponse(doc *domain.QuizDocument) *QuizDocumentResponse {
	if doc == nil {
		return nil
	}
	questions := doc.Questions
	if questions == nil {
		questions = []domain.Question{}
	}
	return &QuizDocumentResponse{Title: doc.Title, Questions: questions}
}

func NewGradeResponse(report *domain.GradeReport) *GradeResponse {
	results := report.Results
	if results == nil {
		results = []domain.QuestionResult{}
	}
	return &GradeResponse{
		Score:   report.Score,
		Total:   report.Total,
		Percent: report.Percent,
		Results: results,
	}
}

func NewQuizRecordResponse(record *domain.QuizRecord) *QuizRecordResponse {
	return &QuizRecordResponse{
		ID:         record.ID,
		Title:      record.Title,
		DocFile:    record.DocFile,
		ParsedJSON: NewQuizDocumentResponse(record.ParsedJSON),
		UploadedAt: record.UploadedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func NewQuizRecordListResponse(records []*domain.QuizRecord) []*QuizRecordResponse {
	resp := make([]*QuizRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, NewQuizRecordResponse(r))
	}
	return resp
}
