// Package docs registers the Swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/csrf/": {
            "get": {
                "description": "Sets the csrftoken cookie that test upload and delete must echo in X-CSRFToken",
                "produces": ["application/json"],
                "tags": ["security"],
                "summary": "Issue a CSRF cookie",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CSRFResponse"}}
                }
            }
        },
        "/parse-doc/": {
            "post": {
                "description": "Parses an uploaded .docx practice test without storing it",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Parse a practice test",
                "parameters": [
                    {"type": "file", "description": "Practice test (.docx)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizDocumentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/grade-test/": {
            "post": {
                "description": "Grades submitted answers against a stored test's parsed questions",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Grade a stored test",
                "parameters": [
                    {"description": "Test id and answers keyed by 0-based question index", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GradeTestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GradeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/grade-key/": {
            "post": {
                "description": "Grades submitted answers against the configured fixed answer key",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Grade against the answer key",
                "parameters": [
                    {"description": "Answers keyed by 0-based question index", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GradeKeyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GradeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/tests/": {
            "get": {
                "description": "Returns every stored test, newest first",
                "produces": ["application/json"],
                "tags": ["tests"],
                "summary": "List stored tests",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizRecordResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores an uploaded .docx practice test and parses it",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["tests"],
                "summary": "Upload a test",
                "parameters": [
                    {"type": "string", "description": "Title (defaults to Untitled Test)", "name": "title", "in": "formData"},
                    {"type": "file", "description": "Practice test (.docx)", "name": "doc_file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.QuizRecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Pings the database and the parse cache",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tests/{id}/file": {
            "get": {
                "description": "Streams the stored .docx file of a test",
                "produces": ["application/vnd.openxmlformats-officedocument.wordprocessingml.document"],
                "tags": ["tests"],
                "summary": "Download the uploaded document",
                "parameters": [
                    {"type": "string", "description": "Test ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/tests/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tests"],
                "summary": "Get a stored test",
                "parameters": [
                    {"type": "string", "description": "Test ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizRecordResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Replaces the given fields without re-parsing the document. PUT and PATCH behave the same.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tests"],
                "summary": "Update a stored test",
                "parameters": [
                    {"type": "string", "description": "Test ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to replace", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateQuizRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizRecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Replaces the given fields without re-parsing the document. PUT and PATCH behave the same.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tests"],
                "summary": "Update a stored test",
                "parameters": [
                    {"type": "string", "description": "Test ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to replace", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateQuizRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizRecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Removes the test and its uploaded file",
                "tags": ["tests"],
                "summary": "Delete a stored test",
                "parameters": [
                    {"type": "string", "description": "Test ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Question": {
            "type": "object",
            "properties": {
                "number": {"type": "integer"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "explanation": {"type": "string"},
                "correct_answer": {"type": "string"}
            }
        },
        "domain.QuestionResult": {
            "type": "object",
            "properties": {
                "question_number": {"type": "integer"},
                "is_correct": {"type": "boolean"},
                "correct_answer": {"type": "string"},
                "user_answer": {"type": "string"}
            }
        },
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.CSRFResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldError"}}
            }
        },
        "dto.GradeKeyRequest": {
            "type": "object",
            "properties": {
                "answers": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.GradeTestRequest": {
            "type": "object",
            "properties": {
                "test_id": {"type": "string"},
                "answers": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.GradeResponse": {
            "type": "object",
            "properties": {
                "score": {"type": "integer"},
                "total": {"type": "integer"},
                "percent": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.QuestionResult"}}
            }
        },
        "dto.QuizDocumentResponse": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}}
            }
        },
        "dto.QuizRecordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "doc_file": {"type": "string"},
                "parsed_json": {"$ref": "#/definitions/dto.QuizDocumentResponse"},
                "uploaded_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.UpdateQuizDocumentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}}
            }
        },
        "dto.UpdateQuizRecordRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "parsed_json": {"$ref": "#/definitions/dto.UpdateQuizDocumentRequest"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Word Quiz API",
	Description:      "Parses uploaded .docx practice tests into quizzes and grades submitted answers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
