package handler

import (
	"path"
	"strings"

	"word-quiz/internal/dto"
	"word-quiz/internal/service"
	"word-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizRecordHandler handles CRUD requests for stored tests
type QuizRecordHandler struct {
	records   service.QuizRecordService
	validator *validation.Validator
}

// NewQuizRecordHandler creates a new QuizRecordHandler instance
func NewQuizRecordHandler(records service.QuizRecordService) *QuizRecordHandler {
	return &QuizRecordHandler{
		records:   records,
		validator: validation.NewValidator(),
	}
}

// List godoc
// @Summary List stored tests
// @Description Returns every stored test, newest first
// @Tags tests
// @Produce json
// @Success 200 {array} dto.QuizRecordResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests/ [get]
func (h *QuizRecordHandler) List(c *fiber.Ctx) error {
	records, err := h.records.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizRecordListResponse(records))
}

// Create godoc
// @Summary Upload a test
// @Description Stores an uploaded .docx practice test and parses it
// @Tags tests
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Title (defaults to Untitled Test)"
// @Param doc_file formData file true "Practice test (.docx)"
// @Success 201 {object} dto.QuizRecordResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests/ [post]
func (h *QuizRecordHandler) Create(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if errs := h.validator.ValidateCreateTitle(title); len(errs) > 0 {
		return errs
	}

	content, fileName, err := readUpload(c)
	if err != nil {
		return err
	}

	record, err := h.records.Create(c.UserContext(), service.CreateQuizRecordInput{
		Title:    title,
		FileName: fileName,
		Content:  content,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizRecordResponse(record))
}

// Get godoc
// @Summary Get a stored test
// @Tags tests
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} dto.QuizRecordResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id}/ [get]
func (h *QuizRecordHandler) Get(c *fiber.Ctx) error {
	record, err := h.records.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizRecordResponse(record))
}

// Update godoc
// @Summary Update a stored test
// @Description Replaces the given fields without re-parsing the document. PUT and PATCH behave the same.
// @Tags tests
// @Accept json
// @Produce json
// @Param id path string true "Test ID"
// @Param request body dto.UpdateQuizRecordRequest true "Fields to replace"
// @Success 200 {object} dto.QuizRecordResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id}/ [put]
// @Router /tests/{id}/ [patch]
func (h *QuizRecordHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateQuizRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return malformedBody(err)
	}

	patch := req.ToPatch()
	if errs := h.validator.ValidateQuizRecordPatch(patch); len(errs) > 0 {
		return errs
	}

	record, err := h.records.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizRecordResponse(record))
}

// Delete godoc
// @Summary Delete a stored test
// @Description Removes the test and its uploaded file
// @Tags tests
// @Param id path string true "Test ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id}/ [delete]
func (h *QuizRecordHandler) Delete(c *fiber.Ctx) error {
	if err := h.records.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Download godoc
// @Summary Download the uploaded document
// @Description Streams the stored .docx file of a test
// @Tags tests
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param id path string true "Test ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id}/file [get]
func (h *QuizRecordHandler) Download(c *fiber.Ctx) error {
	record, rc, err := h.records.OpenDocument(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	name := strings.TrimPrefix(path.Base(record.DocFile), record.ID+"_")
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, docxContentType)
	// fasthttp closes rc once the body is written.
	return c.SendStream(rc)
}
