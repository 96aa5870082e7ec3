package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"word-quiz/internal/domain"
	"word-quiz/internal/util"
)

const (
	maxTitleLength = 200
	minOptions     = 1
	maxOptions     = 10
)

var answerLetterPattern = regexp.MustCompile(`^[a-zA-Z]$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDocxUpload checks an uploaded file name. fileName is empty when no file was sent.
func (v *Validator) ValidateDocxUpload(fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return domain.NewInvalidInputError("No file provided")
	}
	if !strings.EqualFold(filepath.Ext(fileName), ".docx") {
		return domain.NewInvalidInputError("Only .docx files are supported")
	}
	return nil
}

// ValidateGradeTestRequest validates a grade-by-record request.
// answers is nil when the field was absent.
func (v *Validator) ValidateGradeTestRequest(testID string, answers domain.SubmittedAnswers) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(testID) == "" {
		errors = append(errors, domain.NewMissingFieldError("test_id"))
	} else if !util.IsULID(testID) {
		errors = append(errors, domain.NewInvalidFormatError("test_id", "must be a 26-character ULID"))
	}
	if len(answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}

	return errors
}

// ValidateGradeKeyRequest validates a grade-against-key request. An empty object is allowed.
func (v *Validator) ValidateGradeKeyRequest(answers domain.SubmittedAnswers) domain.ValidationErrors {
	if answers == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("answers")}
	}
	return nil
}

// ValidateCreateTitle checks the optional title sent with an upload. A blank title is
// allowed and replaced by the default.
func (v *Validator) ValidateCreateTitle(title string) domain.ValidationErrors {
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n > maxTitleLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError("title", n, 0, maxTitleLength)}
	}
	return nil
}

// ValidateQuizRecordPatch validates the fields present in an update.
func (v *Validator) ValidateQuizRecordPatch(patch domain.QuizRecordPatch) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			errors = append(errors, domain.NewInvalidFormatError("title", "this field may not be blank"))
		} else if n := utf8.RuneCountInString(title); n > maxTitleLength {
			errors = append(errors, domain.NewOutOfRangeError("title", n, 1, maxTitleLength))
		}
	}

	if patch.ParsedJSON != nil && patch.ParsedJSON.Questions != nil {
		for i, q := range *patch.ParsedJSON.Questions {
			errors = append(errors, validateQuestion(fmt.Sprintf("parsed_json.questions[%d]", i), q)...)
		}
	}

	return errors
}

func validateQuestion(prefix string, q domain.Question) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(q.Question) == "" {
		errors = append(errors, domain.NewMissingFieldError(prefix+".question"))
	}

	if n := len(q.Options); n < minOptions || n > maxOptions {
		errors = append(errors, domain.NewOutOfRangeError(prefix+".options", n, minOptions, maxOptions))
	}

	if q.CorrectAnswer == nil {
		errors = append(errors, domain.NewMissingFieldError(prefix+".correct_answer"))
	} else if !answerLetterPattern.MatchString(*q.CorrectAnswer) {
		errors = append(errors, domain.NewInvalidFormatError(prefix+".correct_answer", "must be a single letter"))
	}

	if q.Number < 0 {
		errors = append(errors, domain.NewInvalidFormatError(prefix+".number", "must be positive"))
	}

	return errors
}
