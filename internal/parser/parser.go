// Package parser turns the paragraph text of a practice-test document into a quiz.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"word-quiz/internal/docx"
	"word-quiz/internal/domain"
	"word-quiz/internal/logger"

	"go.uber.org/zap"
)

// expectedOptions is how many unprefixed lines after a question are taken as options.
const expectedOptions = 4

var (
	// "a) ", "B.", "c " at the start of a line.
	optionPrefixRe = regexp.MustCompile(`^[a-dA-D][).\s]\s*`)

	// "Correct answer: b", "The correct - C", "correct:a".
	correctAnswerRe = regexp.MustCompile(`(?i)^.*?\bcorrect(?:\s*answer)?\s*[:\-]\s*([a-d])\b`)
)

type pending struct {
	question      string
	options       []string
	explanation   string
	correctAnswer *string
}

// Parse builds a quiz document from ordered, trimmed, non-blank paragraphs.
// It never fails: every paragraph is classified as title, question, answer line,
// option or explanation.
func Parse(paragraphs []string, titleHint *string) *domain.QuizDocument {
	log := logger.Get()

	var title *string
	if titleHint != nil {
		t := *titleHint
		title = &t
	} else if len(paragraphs) > 0 && !isQuestion(paragraphs[0]) {
		t := paragraphs[0]
		title = &t
		paragraphs = paragraphs[1:]
		log.Debug("parser: title detected", zap.String("title", t))
	}

	var (
		finished []*pending
		current  *pending
	)

	for _, para := range paragraphs {
		if isQuestion(para) {
			if current != nil {
				finished = append(finished, current)
			}
			current = &pending{question: para}
			continue
		}

		if current == nil {
			log.Debug("parser: skipping paragraph before first question", zap.String("paragraph", para))
			continue
		}

		if m := correctAnswerRe.FindStringSubmatch(para); m != nil {
			letter := strings.ToLower(m[1])
			current.correctAnswer = &letter
			continue
		}

		starred := strings.HasPrefix(para, "*")
		text := para
		if starred {
			text = strings.TrimSpace(strings.TrimPrefix(para, "*"))
		}

		if optionPrefixRe.MatchString(text) || len(current.options) < expectedOptions {
			current.options = append(current.options, stripOptionPrefix(text))
			if starred {
				letter := OptionLetter(len(current.options) - 1)
				current.correctAnswer = &letter
			}
			continue
		}

		if current.explanation == "" {
			current.explanation = para
		} else {
			current.explanation += " " + para
		}
	}
	if current != nil {
		finished = append(finished, current)
	}

	questions := make([]domain.Question, 0, len(finished))
	for i, p := range finished {
		options := make([]string, len(p.options))
		for j, opt := range p.options {
			options[j] = fmt.Sprintf("%s) %s", OptionLetter(j), opt)
		}
		answer := p.correctAnswer
		if answer == nil && len(options) > 0 {
			a := domain.DefaultCorrectAnswer
			answer = &a
		}
		questions = append(questions, domain.Question{
			Number:        i + 1,
			Question:      p.question,
			Options:       options,
			Explanation:   p.explanation,
			CorrectAnswer: answer,
		})
	}

	log.Debug("parser: document parsed", zap.Int("questions", len(questions)))
	return &domain.QuizDocument{Title: title, Questions: questions}
}

func isQuestion(para string) bool {
	return strings.HasSuffix(para, "?")
}

func stripOptionPrefix(text string) string {
	return strings.TrimSpace(optionPrefixRe.ReplaceAllString(text, ""))
}

// OptionLetter returns the letter for a 0-based option position:
// a..z, then aa, ab, and so on.
func OptionLetter(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}

// DocxParser reads .docx bytes and parses their paragraphs.
type DocxParser struct{}

func NewDocxParser() *DocxParser {
	return &DocxParser{}
}

// ParseDocument implements domain.DocumentParser.
func (p *DocxParser) ParseDocument(data []byte, titleHint *string) (*domain.QuizDocument, error) {
	paragraphs, err := docx.Paragraphs(data)
	if err != nil {
		return nil, domain.NewDocumentFormatError(err)
	}
	return Parse(paragraphs, titleHint), nil
}
