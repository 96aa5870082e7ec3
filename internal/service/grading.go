package service

import (
	"math"
	"strconv"
	"strings"

	"word-quiz/internal/domain"
)

// GradingService scores submitted answers. It holds no state besides the fixed answer
// key and is safe for concurrent use.
type GradingService struct {
	answerKey domain.AnswerKey
}

// NewGradingService creates a grader. answerKey backs GradeAgainstKey and may be empty.
func NewGradingService(answerKey domain.AnswerKey) *GradingService {
	key := make(domain.AnswerKey, len(answerKey))
	for i, letter := range answerKey {
		key[i] = strings.ToLower(letter)
	}
	return &GradingService{answerKey: key}
}

// Grade compares submitted answers with each question's correct answer.
// Missing answers count as wrong; keys without a matching question are ignored.
func (s *GradingService) Grade(doc *domain.QuizDocument, submitted domain.SubmittedAnswers) *domain.GradeReport {
	var questions []domain.Question
	if doc != nil {
		questions = doc.Questions
	}

	results := make([]domain.QuestionResult, 0, len(questions))
	for i, q := range questions {
		correct := domain.DefaultCorrectAnswer
		if q.CorrectAnswer != nil && *q.CorrectAnswer != "" {
			correct = *q.CorrectAnswer
		}
		results = append(results, compare(i, correct, submitted))
	}
	return report(results)
}

// GradeAgainstKey grades against the configured answer key in ascending index order.
func (s *GradingService) GradeAgainstKey(submitted domain.SubmittedAnswers) *domain.GradeReport {
	indexes := s.answerKey.Indexes()
	results := make([]domain.QuestionResult, 0, len(indexes))
	for _, i := range indexes {
		results = append(results, compare(i, s.answerKey[i], submitted))
	}
	return report(results)
}

func compare(index int, correct string, submitted domain.SubmittedAnswers) domain.QuestionResult {
	correct = strings.ToLower(correct)
	user := strings.ToLower(submitted[strconv.Itoa(index)])
	return domain.QuestionResult{
		QuestionNumber: index + 1,
		IsCorrect:      user == correct,
		CorrectAnswer:  correct,
		UserAnswer:     user,
	}
}

func report(results []domain.QuestionResult) *domain.GradeReport {
	score := 0
	for _, r := range results {
		if r.IsCorrect {
			score++
		}
	}
	return &domain.GradeReport{
		Score:   score,
		Total:   len(results),
		Percent: Percent(score, len(results)),
		Results: results,
	}
}

// Percent returns score/total as a whole percentage, rounding halves to even.
// It is 0 when total is 0.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(score) / float64(total) * 100))
}
