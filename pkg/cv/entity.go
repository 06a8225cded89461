package cv

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Personal holds the contact block of a CV.
type Personal struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	LinkedIn  string `json:"linkedin"`
}

// Experience is one job entry. ID is only set by the editor and is never
// invented by Normalize.
type Experience struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Bullets   []string `json:"bullets"`
}

// Education is one diploma or school entry.
type Education struct {
	ID        string `json:"id,omitempty"`
	Degree    string `json:"degree"`
	School    string `json:"school"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Details   string `json:"details"`
}

// Record is the fixed CV shape shared by the parser, the editor, storage and
// the templates. Dates are opaque strings.
type Record struct {
	Personal   Personal     `json:"personal"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// Empty returns a record with every list allocated.
func Empty() Record {
	return Record{Skills: []string{}, Experience: []Experience{}, Education: []Education{}}
}

// Source kinds of a saved CV.
const (
	SourceText  = "text"
	SourcePDF   = "pdf"
	SourceDOCX  = "docx"
	SourceDOC   = "doc"
	SourceImage = "image"
	SourceFile  = "file"
)

const (
	DefaultTitle   = "Mon CV"
	maxTitleLength = 200
)

// Saved is a persisted CV. Rows are written once and never updated.
type Saved struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Language  string    `json:"language"`
	RawText   string    `json:"raw_text"`
	CV        Record    `json:"cv"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the list view of a saved CV.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summarize drops the payload fields of a saved CV.
func (s Saved) Summarize() Summary {
	return Summary{
		ID:        s.ID,
		Title:     s.Title,
		Source:    s.Source,
		Language:  s.Language,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ErrNotFound is returned by repositories for unknown ids.
var ErrNotFound = errors.New("cv not found")

// Repository stores saved CVs.
type Repository interface {
	Create(ctx context.Context, s Saved) error
	List(ctx context.Context, limit, offset int) ([]Summary, error)
	Get(ctx context.Context, id uuid.UUID) (Saved, error)
}
