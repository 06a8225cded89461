package segment

import (
	"context"

	"go.uber.org/zap"

	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/llm"
)

// Strategy turns cleaned CV text into a structured record.
type Strategy interface {
	Name() string
	Structure(ctx context.Context, text, languageHint string) (cv.Record, error)
}

// Select returns the model-assisted strategy when a model is configured and
// the heuristic one otherwise. Callers never branch on credentials.
func Select(model llm.ChatModel, enabled bool, log *zap.Logger) Strategy {
	if enabled && model != nil {
		return NewAssisted(model, log)
	}
	return Heuristic{}
}
