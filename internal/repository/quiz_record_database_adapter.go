package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"word-quiz/internal/domain"
	"word-quiz/internal/repository/models"
	"word-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const recordColumns = `id "id", title "title", doc_file "doc_file", parsed_json "parsed_json", uploaded_at "uploaded_at", updated_at "updated_at"`

const (
	insertRecordQuery = `INSERT INTO word_tests (id, title, doc_file, parsed_json, uploaded_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	getRecordQuery    = `SELECT ` + recordColumns + ` FROM word_tests WHERE id = ?`
	listRecordsQuery  = `SELECT ` + recordColumns + ` FROM word_tests ORDER BY uploaded_at DESC, id DESC`
	updateRecordQuery = `UPDATE word_tests SET title = ?, parsed_json = ?, updated_at = ? WHERE id = ?`
	deleteRecordQuery = `DELETE FROM word_tests WHERE id = ?`
)

// QuizRecordDatabaseAdapter implements domain.QuizRecordRepository using sqlx.
// Queries are written with ? placeholders and rebound for the connected driver.
type QuizRecordDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuizRecordDatabaseAdapter(db *sqlx.DB) domain.QuizRecordRepository {
	return &QuizRecordDatabaseAdapter{db: db}
}

func (a *QuizRecordDatabaseAdapter) Create(ctx context.Context, record *domain.QuizRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil quiz record")
	}
	m := toModelRecord(record)
	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(insertRecordQuery),
		m.ID,
		m.Title,
		m.DocFile,
		m.ParsedJSON,
		m.UploadedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz record: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no record matches.
func (a *QuizRecordDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.QuizRecord, error) {
	var m models.QuizRecord
	exec := GetExecutor(ctx, a.db)
	if err := exec.GetContext(ctx, &m, exec.Rebind(getRecordQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz record %s: %w", id, err)
	}
	return toDomainRecord(&m), nil
}

func (a *QuizRecordDatabaseAdapter) List(ctx context.Context) ([]*domain.QuizRecord, error) {
	var rows []models.QuizRecord
	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listRecordsQuery)); err != nil {
		return nil, fmt.Errorf("failed to list quiz records: %w", err)
	}
	records := make([]*domain.QuizRecord, 0, len(rows))
	for i := range rows {
		records = append(records, toDomainRecord(&rows[i]))
	}
	return records, nil
}

// Update writes title and parsed document and stamps updated_at.
func (a *QuizRecordDatabaseAdapter) Update(ctx context.Context, record *domain.QuizRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("cannot update quiz record without ID")
	}
	record.UpdatedAt = time.Now().UTC()
	m := toModelRecord(record)

	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(updateRecordQuery),
		m.Title,
		m.ParsedJSON,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz record: %w", err)
	}
	return checkAffected(result, record.ID)
}

func (a *QuizRecordDatabaseAdapter) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(deleteRecordQuery), id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz record: %w", err)
	}
	return checkAffected(result, id)
}

func checkAffected(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewTestNotFoundError(id)
	}
	return nil
}

func toModelRecord(r *domain.QuizRecord) *models.QuizRecord {
	return &models.QuizRecord{
		ID:         r.ID,
		Title:      util.StringToNullString(r.Title),
		DocFile:    r.DocFile,
		ParsedJSON: models.NullQuizDocument{Doc: r.ParsedJSON},
		UploadedAt: r.UploadedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toDomainRecord(m *models.QuizRecord) *domain.QuizRecord {
	return &domain.QuizRecord{
		ID:         m.ID,
		Title:      m.Title.String,
		DocFile:    m.DocFile,
		ParsedJSON: m.ParsedJSON.Doc,
		UploadedAt: m.UploadedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
