package handler

import (
	"word-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /api. Trailing slashes are optional.
// csrfGuard issues the csrftoken cookie on /csrf and is enforced on test upload and
// delete, the requests the web client sends with a token.
func RegisterRoutes(app *fiber.App, quiz *QuizHandler, records *QuizRecordHandler, csrfGuard fiber.Handler) {
	vm := middleware.NewValidationMiddleware()

	api := app.Group("/api")

	api.Get("/csrf", csrfGuard, quiz.CSRF)
	api.Post("/parse-doc", vm.ValidateDocxUpload("file"), quiz.ParseDoc)
	api.Post("/grade-test", quiz.GradeTest)
	api.Post("/grade-key", quiz.GradeKey)

	tests := api.Group("/tests")
	tests.Get("/", records.List)
	tests.Post("/", csrfGuard, vm.ValidateDocxUpload("doc_file"), records.Create)
	tests.Get("/:id", records.Get)
	tests.Get("/:id/file", records.Download)
	tests.Put("/:id", records.Update)
	tests.Patch("/:id", records.Update)
	tests.Delete("/:id", csrfGuard, records.Delete)
}
