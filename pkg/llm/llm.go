package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// VisionModel reads text out of an image or a scanned document page.
type VisionModel interface {
	ReadImage(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}
