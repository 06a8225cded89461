package parsing

import (
	"context"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/extract"
)

// Input is one uploaded document.
type Input struct {
	Filename     string
	ContentType  string
	Data         []byte
	LanguageHint string
}

// Result is a structured CV together with the text it was built from.
type Result struct {
	Source        string              `json:"source"`
	Language      string              `json:"language"`
	RawText       string              `json:"raw_text"`
	CV            cv.Record           `json:"cv"`
	DebugSections map[string][]string `json:"debug_sections"`
}

// Extractor is the part of extract.Extractor the pipeline needs.
type Extractor interface {
	Extract(ctx context.Context, filename, contentType string, data []byte) (extract.Result, error)
}

// Failure is returned when a document was read but could not be turned into
// a CV. It carries what was extracted so callers can show it.
type Failure struct {
	Err           error
	RawText       string
	DebugSections map[string][]string
}

func (f *Failure) Error() string { return f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }
