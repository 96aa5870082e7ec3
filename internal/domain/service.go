package domain

import (
	"context"
	"io"
)

// DocumentParser turns raw document bytes into a quiz document.
type DocumentParser interface {
	// ParseDocument returns a document-format error when the bytes cannot be read.
	ParseDocument(data []byte, titleHint *string) (*QuizDocument, error)
}

// QuizRecordRepository defines the interface for quiz record persistence.
// GetByID returns (nil, nil) when no record matches.
type QuizRecordRepository interface {
	Create(ctx context.Context, record *QuizRecord) error
	GetByID(ctx context.Context, id string) (*QuizRecord, error)
	List(ctx context.Context) ([]*QuizRecord, error)
	Update(ctx context.Context, record *QuizRecord) error
	Delete(ctx context.Context, id string) error
}

// TransactionManager runs fn inside a single transaction; repository calls made with
// the context passed to fn join it. A non-nil error from fn rolls the transaction back.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BlobStore keeps uploaded original files.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
