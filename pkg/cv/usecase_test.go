package cv

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvstudio/pkg/apperr"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]Saved
	err  error
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{rows: map[uuid.UUID]Saved{}} }

func (m *memoryRepo) Create(_ context.Context, s Saved) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows[s.ID] = s
	return nil
}

func (m *memoryRepo) List(_ context.Context, limit, offset int) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Summary, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s.Summarize())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []Summary{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Saved, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return Saved{}, ErrNotFound
	}
	return s, nil
}

func sampleRecord() Record {
	r := Empty()
	r.Personal = Personal{FirstName: "Jean", LastName: "Dupont", Email: "jean.dupont@mail.com"}
	r.Summary = "Développeur backend"
	r.Skills = []string{"Go", "PostgreSQL"}
	r.Experience = []Experience{{
		Title: "Développeur Go", Company: "Acme", StartDate: "2020", EndDate: "Present",
		Bullets: []string{"API REST"},
	}}
	return r
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	saved, err := svc.Save(ctx, SaveInput{Title: "Backend", Source: "pdf", Language: "fr", RawText: "raw", CV: sampleRecord()})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	got, err := svc.Get(ctx, saved.ID.String())
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), got.CV)
	assert.Equal(t, "Backend", got.Title)
	assert.Equal(t, SourcePDF, got.Source)
	assert.Equal(t, "fr", got.Language)
	assert.Equal(t, "raw", got.RawText)
}

func TestSaveDefaults(t *testing.T) {
	svc := NewService(newMemoryRepo())

	saved, err := svc.Save(context.Background(), SaveInput{Title: "   ", CV: map[string]any{"skills": "Go, SQL"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, saved.Title)
	assert.Equal(t, SourceText, saved.Source)
	assert.Equal(t, []string{"Go", "SQL"}, saved.CV.Skills)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)

	saved, err = svc.Save(context.Background(), SaveInput{Title: strings.Repeat("é", 300)})
	require.NoError(t, err)
	assert.Len(t, []rune(saved.Title), maxTitleLength)
	assert.Equal(t, Empty(), saved.CV)
}

func TestSaveRejectsUnknownSource(t *testing.T) {
	_, err := NewService(newMemoryRepo()).Save(context.Background(), SaveInput{Source: "odt"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrTypeInvalidInput, apperr.TypeOf(err))
}

func TestSaveAcceptsFileSource(t *testing.T) {
	saved, err := NewService(newMemoryRepo()).Save(context.Background(), SaveInput{Title: "T", Source: "file"})
	require.NoError(t, err)
	assert.Equal(t, SourceFile, saved.Source)
}

func TestSaveRepositoryFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = errors.New("connection refused")
	_, err := NewService(repo).Save(context.Background(), SaveInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrTypeInternal, apperr.TypeOf(err))
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo())
	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		_, err := svc.Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, apperr.ErrTypeNotFound, apperr.TypeOf(err))
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := &service{repo: repo, now: time.Now}
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, title := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		_, err := svc.Save(context.Background(), SaveInput{Title: title})
		require.NoError(t, err)
	}

	items, err := svc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "b", items[1].Title)

	items, err = svc.List(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
