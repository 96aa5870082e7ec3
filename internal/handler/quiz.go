package handler

import (
	"io"
	"mime/multipart"

	"word-quiz/internal/domain"
	"word-quiz/internal/dto"
	"word-quiz/internal/logger"
	"word-quiz/internal/middleware"
	"word-quiz/internal/service"
	"word-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles parsing and grading requests
type QuizHandler struct {
	parseCache service.ParseCacheService
	records    service.QuizRecordService
	grader     *service.GradingService
	validator  *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(
	parseCache service.ParseCacheService,
	records service.QuizRecordService,
	grader *service.GradingService,
) *QuizHandler {
	return &QuizHandler{
		parseCache: parseCache,
		records:    records,
		grader:     grader,
		validator:  validation.NewValidator(),
	}
}

// ParseDoc godoc
// @Summary Parse a practice test
// @Description Parses an uploaded .docx practice test without storing it
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Practice test (.docx)"
// @Success 200 {object} dto.QuizDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /parse-doc/ [post]
func (h *QuizHandler) ParseDoc(c *fiber.Ctx) error {
	content, fileName, err := readUpload(c)
	if err != nil {
		return err
	}

	doc, err := h.parseCache.Parse(c.UserContext(), content, nil)
	if err != nil {
		logger.Get().Warn("Failed to parse uploaded document",
			zap.String("file_name", fileName),
			zap.Error(err),
		)
		return err
	}

	return c.JSON(dto.NewQuizDocumentResponse(doc))
}

// GradeTest godoc
// @Summary Grade a stored test
// @Description Grades submitted answers against a stored test's parsed questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GradeTestRequest true "Test id and answers keyed by 0-based question index"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /grade-test/ [post]
func (h *QuizHandler) GradeTest(c *fiber.Ctx) error {
	var req dto.GradeTestRequest
	if err := c.BodyParser(&req); err != nil {
		return malformedBody(err)
	}

	answers := domain.SubmittedAnswers(req.Answers)
	if errs := h.validator.ValidateGradeTestRequest(req.TestID, answers); len(errs) > 0 {
		return errs
	}

	report, err := h.records.Grade(c.UserContext(), req.TestID, answers)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewGradeResponse(report))
}

// GradeKey godoc
// @Summary Grade against the answer key
// @Description Grades submitted answers against the configured fixed answer key
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GradeKeyRequest true "Answers keyed by 0-based question index"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /grade-key/ [post]
func (h *QuizHandler) GradeKey(c *fiber.Ctx) error {
	var req dto.GradeKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return malformedBody(err)
	}

	answers := domain.SubmittedAnswers(req.Answers)
	if errs := h.validator.ValidateGradeKeyRequest(answers); len(errs) > 0 {
		return errs
	}

	return c.JSON(dto.NewGradeResponse(h.grader.GradeAgainstKey(answers)))
}

// CSRF godoc
// @Summary Issue a CSRF cookie
// @Description Sets the csrftoken cookie that test upload and delete must echo in X-CSRFToken
// @Tags security
// @Produce json
// @Success 200 {object} dto.CSRFResponse
// @Router /csrf/ [get]
func (h *QuizHandler) CSRF(c *fiber.Ctx) error {
	return c.JSON(dto.CSRFResponse{Detail: "CSRF cookie set"})
}

// readUpload returns the bytes of the file checked by middleware.ValidateDocxUpload.
func readUpload(c *fiber.Ctx) ([]byte, string, error) {
	fh, ok := middleware.ValidatedUpload(c)
	if !ok {
		return nil, "", domain.NewInvalidInputError("No file provided")
	}
	content, err := readFileHeader(fh)
	if err != nil {
		return nil, fh.Filename, domain.NewInternalError("Failed to read uploaded file", err)
	}
	return content, fh.Filename, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func malformedBody(err error) error {
	return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON body: "+err.Error())}
}
