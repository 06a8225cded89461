package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/pkg/apperr"
	"github.com/artem13815/cvstudio/pkg/cache"
	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/extract"
	"github.com/artem13815/cvstudio/pkg/nlp"
	"github.com/artem13815/cvstudio/pkg/segment"
)

const (
	cacheNamespace = "cv:parse"
	msgNoText      = "no readable text found in the document; for scanned files configure OPENROUTER_API_KEY to enable OCR"
	msgSchema      = "structured cv does not match the schema"
)

// UseCase: разбор загруженного документа в структурированное CV.
type UseCase interface {
	Parse(ctx context.Context, in Input) (Result, error)
}

type service struct {
	extractor Extractor
	strategy  segment.Strategy
	cache     cache.Cache
	ttl       time.Duration
	log       *zap.Logger
}

// NewService wires the pipeline. c may be nil to disable caching.
func NewService(extractor Extractor, strategy segment.Strategy, c cache.Cache, ttl time.Duration, log *zap.Logger) UseCase {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{extractor: extractor, strategy: strategy, cache: c, ttl: ttl, log: log}
}

func (s *service) Parse(ctx context.Context, in Input) (Result, error) {
	if len(in.Data) == 0 {
		return Result{}, apperr.InvalidInput("empty file", nil)
	}
	started := time.Now()

	ext, err := s.extractor.Extract(ctx, in.Filename, in.ContentType, in.Data)
	if errors.Is(err, extract.ErrUnsupported) {
		return Result{}, apperr.InvalidInput(err.Error(), err)
	}
	if err != nil {
		return Result{}, apperr.Unprocessable("failed to read the document", err)
	}

	text := strings.TrimSpace(ext.Text)
	if text == "" {
		s.log.Info("no readable text",
			zap.String("source", string(ext.Kind)),
			zap.Int("raw_chars", len(ext.Raw)),
		)
		return Result{}, &Failure{
			Err:           apperr.Unprocessable(msgNoText, nil),
			RawText:       ext.Raw,
			DebugSections: segment.Debug(ext.Raw),
		}
	}

	language := strings.ToLower(strings.TrimSpace(in.LanguageHint))
	if language == "" {
		language = nlp.DetectLanguage(text)
	}

	record, err := s.structure(ctx, text, language)
	if err != nil {
		return Result{}, apperr.Unprocessable("failed to structure the document", err)
	}
	debug := segment.Debug(text)
	if err := cv.Validate(record); err != nil {
		return Result{}, &Failure{Err: apperr.Unprocessable(msgSchema, err), RawText: text, DebugSections: debug}
	}

	s.log.Info("cv parsed",
		zap.String("source", string(ext.Kind)),
		zap.String("strategy", s.strategy.Name()),
		zap.String("language", language),
		zap.Int("chars", len(text)),
		zap.Bool("low_confidence", ext.LowConfidence),
		zap.Duration("duration", time.Since(started)),
	)
	return Result{
		Source:        string(ext.Kind),
		Language:      language,
		RawText:       text,
		CV:            record,
		DebugSections: debug,
	}, nil
}

// structure runs the strategy behind the cache. Cache errors only cost a
// recomputation.
func (s *service) structure(ctx context.Context, text, language string) (cv.Record, error) {
	key := cache.Key(cacheNamespace, s.strategy.Name(), language, text)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached cv.Record
		if json.Unmarshal(raw, &cached) == nil {
			return cv.Normalize(cached), nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("parse cache read failed", zap.Error(err))
	}

	record, err := s.strategy.Structure(ctx, text, language)
	if err != nil {
		return cv.Record{}, err
	}
	record = cv.Normalize(record)

	if raw, err := json.Marshal(record); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.Warn("parse cache write failed", zap.Error(err))
		}
	}
	return record, nil
}
