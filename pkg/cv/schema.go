package cv

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Validate checks a record against the strict CV schema. Normalized records
// always pass; the check guards hand-built records and future field changes.
func Validate(r Record) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load cv schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(r))
	if err != nil {
		return fmt.Errorf("validate cv: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
