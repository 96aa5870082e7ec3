package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"word-quiz/internal/domain"
	"word-quiz/internal/logger"
	"word-quiz/internal/storage"
	"word-quiz/internal/util"

	"go.uber.org/zap"
)

// CreateQuizRecordInput is an uploaded document to be stored and parsed.
type CreateQuizRecordInput struct {
	Title    string
	FileName string
	Content  []byte
}

// QuizRecordService defines the operations on stored quiz records.
type QuizRecordService interface {
	Create(ctx context.Context, in CreateQuizRecordInput) (*domain.QuizRecord, error)
	List(ctx context.Context) ([]*domain.QuizRecord, error)
	Get(ctx context.Context, id string) (*domain.QuizRecord, error)
	Update(ctx context.Context, id string, patch domain.QuizRecordPatch) (*domain.QuizRecord, error)
	Delete(ctx context.Context, id string) error
	Grade(ctx context.Context, id string, answers domain.SubmittedAnswers) (*domain.GradeReport, error)
	OpenDocument(ctx context.Context, id string) (*domain.QuizRecord, io.ReadCloser, error)
}

type quizRecordService struct {
	repo   domain.QuizRecordRepository
	tx     domain.TransactionManager
	blobs  domain.BlobStore
	parser domain.DocumentParser
	grader *GradingService
}

func NewQuizRecordService(
	repo domain.QuizRecordRepository,
	tx domain.TransactionManager,
	blobs domain.BlobStore,
	parser domain.DocumentParser,
	grader *GradingService,
) QuizRecordService {
	return &quizRecordService{
		repo:   repo,
		tx:     tx,
		blobs:  blobs,
		parser: parser,
		grader: grader,
	}
}

// Create stores the original file, inserts the record and parses it in one transaction.
// On any failure the record is not persisted and the stored file is removed.
func (s *quizRecordService) Create(ctx context.Context, in CreateQuizRecordInput) (*domain.QuizRecord, error) {
	record := domain.NewQuizRecord(util.NewULID(), strings.TrimSpace(in.Title))

	key, err := s.blobs.Put(storage.UploadKey(record.ID, in.FileName), bytes.NewReader(in.Content))
	if err != nil {
		return nil, domain.NewInternalError("Failed to store uploaded document", err)
	}
	record.DocFile = key

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, record); err != nil {
			return err
		}

		title := record.Title
		doc, err := s.parser.ParseDocument(in.Content, &title)
		if err != nil {
			return domain.NewParseFailedError(err)
		}
		record.ParsedJSON = doc

		return s.repo.Update(ctx, record)
	})
	if err != nil {
		if delErr := s.blobs.Delete(key); delErr != nil {
			logger.Get().Error("Failed to remove stored document after create failure",
				zap.String("key", key), zap.Error(delErr))
		}
		logger.Get().Warn("Quiz record create failed", zap.String("id", record.ID), zap.Error(err))
		return nil, asDomainError(err, "Failed to create quiz record")
	}

	logger.Get().Info("Quiz record created",
		zap.String("id", record.ID),
		zap.String("doc_file", record.DocFile),
		zap.Int("questions", len(record.ParsedJSON.Questions)),
	)
	return record, nil
}

func (s *quizRecordService) List(ctx context.Context) ([]*domain.QuizRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, asDomainError(err, "Failed to list quiz records")
	}
	return records, nil
}

func (s *quizRecordService) Get(ctx context.Context, id string) (*domain.QuizRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, asDomainError(err, "Failed to get quiz record")
	}
	if record == nil {
		return nil, domain.NewTestNotFoundError(id)
	}
	return record, nil
}

// Update replaces the fields present in patch. The document is never re-parsed.
func (s *quizRecordService) Update(ctx context.Context, id string, patch domain.QuizRecordPatch) (*domain.QuizRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		record.Title = strings.TrimSpace(*patch.Title)
	}
	if !patch.ParsedJSON.Empty() {
		record.ParsedJSON = applyDocumentPatch(record.ParsedJSON, patch.ParsedJSON)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, asDomainError(err, "Failed to update quiz record")
	}
	return record, nil
}

func applyDocumentPatch(current *domain.QuizDocument, patch *domain.QuizDocumentPatch) *domain.QuizDocument {
	doc := &domain.QuizDocument{Questions: []domain.Question{}}
	if current != nil {
		doc.Title = current.Title
		doc.Questions = current.Questions
	}
	if patch.Title != nil {
		title := *patch.Title
		doc.Title = &title
	}
	if patch.Questions != nil {
		questions := make([]domain.Question, len(*patch.Questions))
		for i, q := range *patch.Questions {
			if q.Number == 0 {
				q.Number = i + 1
			}
			if q.CorrectAnswer != nil {
				answer := strings.ToLower(*q.CorrectAnswer)
				q.CorrectAnswer = &answer
			}
			questions[i] = q
		}
		doc.Questions = questions
	}
	return doc
}

// Delete removes the record and then its stored file. A failed file removal is logged only.
func (s *quizRecordService) Delete(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return asDomainError(err, "Failed to delete quiz record")
	}
	if record.DocFile != "" {
		if err := s.blobs.Delete(record.DocFile); err != nil {
			logger.Get().Error("Failed to remove stored document", zap.String("key", record.DocFile), zap.Error(err))
		}
	}
	return nil
}

// Grade scores answers against the stored record's parsed questions.
func (s *quizRecordService) Grade(ctx context.Context, id string, answers domain.SubmittedAnswers) (*domain.GradeReport, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.grader.Grade(record.ParsedJSON, answers), nil
}

// OpenDocument returns the record and a reader over its stored upload. The caller closes it.
func (s *quizRecordService) OpenDocument(ctx context.Context, id string) (*domain.QuizRecord, io.ReadCloser, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if record.DocFile == "" {
		return nil, nil, domain.NewNotFoundError("Uploaded document not found")
	}
	rc, err := s.blobs.Get(record.DocFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, domain.NewNotFoundError("Uploaded document not found")
		}
		return nil, nil, domain.NewInternalError("Failed to open stored document", err)
	}
	return record, rc, nil
}

func asDomainError(err error, message string) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return domain.NewInternalError(message, err)
}
