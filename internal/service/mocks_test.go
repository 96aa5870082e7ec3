package service

import (
	"context"
	"io"
	"strings"
	"time"

	"word-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRecordRepository ---
type MockQuizRecordRepository struct {
	mock.Mock
}

func (m *MockQuizRecordRepository) Create(ctx context.Context, record *domain.QuizRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockQuizRecordRepository) GetByID(ctx context.Context, id string) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRecordRepository) List(ctx context.Context) ([]*domain.QuizRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRecordRepository) Update(ctx context.Context, record *domain.QuizRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockQuizRecordRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockTransactionManager ---
// Runs fn directly and records whether it failed, standing in for a real rollback.
type MockTransactionManager struct {
	Calls      int
	RolledBack bool
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if err := fn(ctx); err != nil {
		m.RolledBack = true
		return err
	}
	return nil
}

// --- MockBlobStore ---
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(key string, r io.Reader) (string, error) {
	args := m.Called(key, r)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Get(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return io.NopCloser(strings.NewReader(args.String(0))), args.Error(1)
}

func (m *MockBlobStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// --- MockDocumentParser ---
type MockDocumentParser struct {
	mock.Mock
}

func (m *MockDocumentParser) ParseDocument(data []byte, titleHint *string) (*domain.QuizDocument, error) {
	args := m.Called(data, titleHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizDocument), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
