package cv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvstudio/pkg/apperr"
)

// SaveInput is the payload of a save request. CV may be any loose shape,
// it is normalized before storing.
type SaveInput struct {
	Title    string
	Source   string
	Language string
	RawText  string
	CV       any
}

// UseCase инкапсулирует сохранение и чтение CV.
type UseCase interface {
	Save(ctx context.Context, in SaveInput) (Saved, error)
	List(ctx context.Context, limit, offset int) ([]Summary, error)
	Get(ctx context.Context, id string) (Saved, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

var validSources = map[string]struct{}{
	SourceText: {}, SourceFile: {}, SourcePDF: {}, SourceDOCX: {}, SourceDOC: {}, SourceImage: {},
}

func (s *service) Save(ctx context.Context, in SaveInput) (Saved, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultTitle
	}
	if r := []rune(title); len(r) > maxTitleLength {
		title = string(r[:maxTitleLength])
	}
	source := strings.ToLower(strings.TrimSpace(in.Source))
	if source == "" {
		source = SourceText
	}
	if _, ok := validSources[source]; !ok {
		return Saved{}, apperr.InvalidInput("unknown source: "+source, nil)
	}

	record := Normalize(in.CV)
	if err := Validate(record); err != nil {
		return Saved{}, apperr.InvalidInput("cv does not match the schema", err)
	}

	now := s.now().UTC()
	saved := Saved{
		ID:        uuid.New(),
		Title:     title,
		Source:    source,
		Language:  strings.TrimSpace(in.Language),
		RawText:   in.RawText,
		CV:        record,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return Saved{}, apperr.Internal("failed to save cv", err)
	}
	return saved, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list cvs", err)
	}
	if items == nil {
		items = []Summary{}
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id string) (Saved, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Saved{}, apperr.NotFound("cv not found", err)
	}
	saved, err := s.repo.Get(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		return Saved{}, apperr.NotFound("cv not found", err)
	}
	if err != nil {
		return Saved{}, apperr.Internal("failed to load cv", err)
	}
	return saved, nil
}
