package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"word-quiz/internal/domain"
)

// NullQuizDocument stores a parsed quiz document as JSON text. A nil Doc is SQL NULL.
type NullQuizDocument struct {
	Doc *domain.QuizDocument
}

// Value implements the driver.Valuer interface
func (n NullQuizDocument) Value() (driver.Value, error) {
	if n.Doc == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(n.Doc)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (n *NullQuizDocument) Scan(value interface{}) error {
	n.Doc = nil
	if value == nil {
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("NullQuizDocument Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		return nil
	}

	var doc domain.QuizDocument
	if err := json.Unmarshal(bytesToParse, &doc); err != nil {
		return fmt.Errorf("NullQuizDocument Scan: %w", err)
	}
	n.Doc = &doc
	return nil
}

// QuizRecord is the word_tests row.
type QuizRecord struct {
	ID         string           `db:"id"`
	Title      sql.NullString   `db:"title"`
	DocFile    string           `db:"doc_file"`
	ParsedJSON NullQuizDocument `db:"parsed_json"`
	UploadedAt time.Time        `db:"uploaded_at"`
	UpdatedAt  time.Time        `db:"updated_at"`
}

func (QuizRecord) TableName() string {
	return "word_tests"
}
