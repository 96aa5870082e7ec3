package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"word-quiz/internal/cache"
	"word-quiz/internal/domain"
	"word-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ParseCacheService parses uploaded documents for the parse-only endpoint, memoising
// results by content hash.
type ParseCacheService interface {
	Parse(ctx context.Context, data []byte, titleHint *string) (*domain.QuizDocument, error)
}

type parseCacheServiceImpl struct {
	parser domain.DocumentParser
	cache  domain.Cache
	ttl    time.Duration
	group  singleflight.Group
}

// NewParseCacheService wraps parser with a result cache. A nil cache disables caching.
func NewParseCacheService(parser domain.DocumentParser, cache domain.Cache, ttl time.Duration) ParseCacheService {
	if cache == nil {
		logger.Get().Warn("ParseCacheService initialized with nil cache. Parsing will not be cached.")
		return &noopParseCacheService{parser: parser}
	}
	return &parseCacheServiceImpl{
		parser: parser,
		cache:  cache,
		ttl:    ttl,
	}
}

// ContentHash returns the hex SHA-256 of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *parseCacheServiceImpl) generateKey(data []byte, titleHint *string) string {
	hash := ContentHash(data)
	if titleHint != nil {
		return cache.GenerateCacheKey("parser", "document", hash, *titleHint)
	}
	return cache.GenerateCacheKey("parser", "document", hash)
}

// Parse returns the cached document for identical bytes, or parses and caches it.
// Cache failures are logged and never fail the request.
func (s *parseCacheServiceImpl) Parse(ctx context.Context, data []byte, titleHint *string) (*domain.QuizDocument, error) {
	key := s.generateKey(data, titleHint)

	if doc := s.lookup(ctx, key); doc != nil {
		return doc, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		doc, err := s.parser.ParseDocument(data, titleHint)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Shared in-flight parse result", zap.String("key", key))
	}
	return v.(*domain.QuizDocument), nil
}

func (s *parseCacheServiceImpl) lookup(ctx context.Context, key string) *domain.QuizDocument {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read parse cache", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var doc domain.QuizDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		logger.Get().Warn("Discarding corrupt parse cache entry", zap.String("key", key), zap.Error(err))
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to delete corrupt parse cache entry", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	logger.Get().Debug("Parse cache hit", zap.String("key", key))
	return &doc
}

func (s *parseCacheServiceImpl) store(ctx context.Context, key string, doc *domain.QuizDocument) {
	data, err := json.Marshal(doc)
	if err != nil {
		logger.Get().Warn("Failed to marshal parse result for caching", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Failed to write parse cache", zap.String("key", key), zap.Error(err))
		return
	}
	logger.Get().Debug("Cached parse result", zap.String("key", key), zap.Duration("ttl", s.ttl))
}

// noopParseCacheService parses every request.
type noopParseCacheService struct {
	parser domain.DocumentParser
}

func (s *noopParseCacheService) Parse(ctx context.Context, data []byte, titleHint *string) (*domain.QuizDocument, error) {
	return s.parser.ParseDocument(data, titleHint)
}
