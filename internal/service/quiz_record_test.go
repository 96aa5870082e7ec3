package service

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"word-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type quizRecordFixture struct {
	repo   *MockQuizRecordRepository
	tx     *MockTransactionManager
	blobs  *MockBlobStore
	parser *MockDocumentParser
	svc    QuizRecordService
}

func newQuizRecordFixture() *quizRecordFixture {
	f := &quizRecordFixture{
		repo:   new(MockQuizRecordRepository),
		tx:     new(MockTransactionManager),
		blobs:  new(MockBlobStore),
		parser: new(MockDocumentParser),
	}
	f.svc = NewQuizRecordService(f.repo, f.tx, f.blobs, f.parser, NewGradingService(nil))
	return f
}

func storedRecord(id string) *domain.QuizRecord {
	record := domain.NewQuizRecord(id, "Stored")
	record.DocFile = "uploads/" + id + "_quiz.docx"
	record.ParsedJSON = practiceQuiz()
	return record
}

func TestQuizRecordService_Create(t *testing.T) {
	f := newQuizRecordFixture()
	ctx := context.Background()
	content := []byte("docx bytes")
	doc := practiceQuiz()

	f.blobs.On("Put", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "uploads/") && strings.HasSuffix(key, "_quiz.docx")
	}), mock.Anything).Return("uploads/stored_quiz.docx", nil).Once()
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.QuizRecord) bool {
		return r.ParsedJSON == nil && r.Title == domain.DefaultTestTitle
	})).Return(nil).Once()
	f.parser.On("ParseDocument", content, mock.MatchedBy(func(hint *string) bool {
		return hint != nil && *hint == domain.DefaultTestTitle
	})).Return(doc, nil).Once()
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	record, err := f.svc.Create(ctx, CreateQuizRecordInput{Title: "  ", FileName: "quiz.docx", Content: content})
	require.NoError(t, err)
	assert.Len(t, record.ID, 26)
	assert.Equal(t, domain.DefaultTestTitle, record.Title)
	assert.Equal(t, "uploads/stored_quiz.docx", record.DocFile)
	assert.Same(t, doc, record.ParsedJSON)
	assert.Equal(t, 1, f.tx.Calls)
	assert.False(t, f.tx.RolledBack)

	f.blobs.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.parser.AssertExpectations(t)
}

func TestQuizRecordService_Create_ParseFailureRollsBack(t *testing.T) {
	f := newQuizRecordFixture()
	ctx := context.Background()

	f.blobs.On("Put", mock.Anything, mock.Anything).Return("uploads/x_bad.docx", nil).Once()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.parser.On("ParseDocument", mock.Anything, mock.Anything).
		Return(nil, domain.NewDocumentFormatError(errors.New("zip: not a valid zip file"))).Once()
	f.blobs.On("Delete", "uploads/x_bad.docx").Return(nil).Once()

	record, err := f.svc.Create(ctx, CreateQuizRecordInput{Title: "T", FileName: "bad.docx", Content: []byte("nope")})
	assert.Nil(t, record)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeParseFailed, domainErr.Code)
	assert.True(t, f.tx.RolledBack)

	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.blobs.AssertExpectations(t)
}

func TestQuizRecordService_Create_StoreFailures(t *testing.T) {
	t.Run("blob put fails", func(t *testing.T) {
		f := newQuizRecordFixture()
		f.blobs.On("Put", mock.Anything, mock.Anything).Return("", errors.New("disk full")).Once()

		_, err := f.svc.Create(context.Background(), CreateQuizRecordInput{FileName: "q.docx"})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
		assert.Equal(t, 0, f.tx.Calls)
	})

	t.Run("insert fails and file is removed", func(t *testing.T) {
		f := newQuizRecordFixture()
		f.blobs.On("Put", mock.Anything, mock.Anything).Return("uploads/k.docx", nil).Once()
		f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
		f.blobs.On("Delete", "uploads/k.docx").Return(errors.New("already gone")).Once()

		_, err := f.svc.Create(context.Background(), CreateQuizRecordInput{FileName: "k.docx"})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
		f.parser.AssertNotCalled(t, "ParseDocument", mock.Anything, mock.Anything)
		f.blobs.AssertExpectations(t)
	})
}

func TestQuizRecordService_Get(t *testing.T) {
	f := newQuizRecordFixture()
	ctx := context.Background()
	record := storedRecord("01")

	f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
	f.repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()
	f.repo.On("GetByID", ctx, "broken").Return(nil, errors.New("db down")).Once()

	got, err := f.svc.Get(ctx, "01")
	require.NoError(t, err)
	assert.Same(t, record, got)

	var domainErr *domain.DomainError
	_, err = f.svc.Get(ctx, "missing")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeTestNotFound, domainErr.Code)

	_, err = f.svc.Get(ctx, "broken")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestQuizRecordService_List(t *testing.T) {
	f := newQuizRecordFixture()
	ctx := context.Background()
	records := []*domain.QuizRecord{storedRecord("02"), storedRecord("01")}

	f.repo.On("List", ctx).Return(records, nil).Once()
	got, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestQuizRecordService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("title only keeps parsed document", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")
		original := record.ParsedJSON

		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.repo.On("Update", ctx, record).Return(nil).Once()

		title := " Renamed "
		got, err := f.svc.Update(ctx, "01", domain.QuizRecordPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Same(t, original, got.ParsedJSON)
		f.parser.AssertNotCalled(t, "ParseDocument", mock.Anything, mock.Anything)
	})

	t.Run("questions replace and are numbered", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")
		docTitle := record.ParsedJSON.Title

		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.repo.On("Update", ctx, record).Return(nil).Once()

		answer := "C"
		questions := []domain.Question{
			{Question: "New?", Options: []string{"a) x", "b) y", "c) z"}, CorrectAnswer: &answer},
		}
		got, err := f.svc.Update(ctx, "01", domain.QuizRecordPatch{
			ParsedJSON: &domain.QuizDocumentPatch{Questions: &questions},
		})
		require.NoError(t, err)
		require.Len(t, got.ParsedJSON.Questions, 1)
		assert.Equal(t, 1, got.ParsedJSON.Questions[0].Number)
		assert.Equal(t, "c", *got.ParsedJSON.Questions[0].CorrectAnswer)
		assert.Equal(t, docTitle, got.ParsedJSON.Title)
		assert.Equal(t, "Stored", got.Title)

		report := NewGradingService(nil).Grade(got.ParsedJSON, domain.SubmittedAnswers{"0": "c"})
		assert.Equal(t, 1, report.Score)
	})

	t.Run("document title on unparsed record", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := domain.NewQuizRecord("01", "T")

		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.repo.On("Update", ctx, record).Return(nil).Once()

		docTitle := "Doc"
		got, err := f.svc.Update(ctx, "01", domain.QuizRecordPatch{
			ParsedJSON: &domain.QuizDocumentPatch{Title: &docTitle},
		})
		require.NoError(t, err)
		require.NotNil(t, got.ParsedJSON)
		assert.Equal(t, "Doc", *got.ParsedJSON.Title)
		assert.NotNil(t, got.ParsedJSON.Questions)
		assert.Empty(t, got.ParsedJSON.Questions)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newQuizRecordFixture()
		f.repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

		_, err := f.svc.Update(ctx, "missing", domain.QuizRecordPatch{})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeTestNotFound, domainErr.Code)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestQuizRecordService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes record and file", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")

		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.repo.On("Delete", ctx, "01").Return(nil).Once()
		f.blobs.On("Delete", record.DocFile).Return(nil).Once()

		require.NoError(t, f.svc.Delete(ctx, "01"))
		f.repo.AssertExpectations(t)
		f.blobs.AssertExpectations(t)
	})

	t.Run("file removal failure is not an error", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")

		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.repo.On("Delete", ctx, "01").Return(nil).Once()
		f.blobs.On("Delete", record.DocFile).Return(errors.New("permission denied")).Once()

		assert.NoError(t, f.svc.Delete(ctx, "01"))
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newQuizRecordFixture()
		f.repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

		err := f.svc.Delete(ctx, "missing")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeTestNotFound, domainErr.Code)
		f.blobs.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestQuizRecordService_Grade(t *testing.T) {
	ctx := context.Background()
	f := newQuizRecordFixture()

	f.repo.On("GetByID", ctx, "01").Return(storedRecord("01"), nil).Once()
	report, err := f.svc.Grade(ctx, "01", domain.SubmittedAnswers{"0": "b", "1": "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Score)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 50, report.Percent)

	unparsed := domain.NewQuizRecord("02", "T")
	f.repo.On("GetByID", ctx, "02").Return(unparsed, nil).Once()
	report, err = f.svc.Grade(ctx, "02", domain.SubmittedAnswers{"0": "a"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)

	f.repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()
	_, err = f.svc.Grade(ctx, "missing", domain.SubmittedAnswers{"0": "a"})
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeTestNotFound, domainErr.Code)
}

func TestQuizRecordService_OpenDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("streams stored file", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")
		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.blobs.On("Get", record.DocFile).Return("docx bytes", nil).Once()

		got, rc, err := f.svc.OpenDocument(ctx, "01")
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, record, got)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "docx bytes", string(data))
	})

	t.Run("missing file is not found", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")
		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.blobs.On("Get", record.DocFile).Return(nil, &fs.PathError{Op: "open", Path: record.DocFile, Err: fs.ErrNotExist}).Once()

		_, _, err := f.svc.OpenDocument(ctx, "01")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		f := newQuizRecordFixture()
		record := storedRecord("01")
		f.repo.On("GetByID", ctx, "01").Return(record, nil).Once()
		f.blobs.On("Get", record.DocFile).Return(nil, errors.New("permission denied")).Once()

		_, _, err := f.svc.OpenDocument(ctx, "01")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newQuizRecordFixture()
		f.repo.On("GetByID", ctx, "missing").Return(nil, nil).Once()

		_, _, err := f.svc.OpenDocument(ctx, "missing")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeTestNotFound, domainErr.Code)
		f.blobs.AssertNotCalled(t, "Get", mock.Anything)
	})
}
