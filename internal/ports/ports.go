package ports

import (
	"context"
)

// CompletionRequest carries everything one model call needs.
type CompletionRequest struct {
	// System is the persona instruction; Prompt is the task instruction.
	System      string
	Prompt      string
	Temperature float64
	// JSONMode asks the service for a strict JSON object response.
	JSONMode bool
}

// Completer is the abstract text-completion service. Implementations may
// fail or return malformed content; callers normalize defensively.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// DocumentExtractor pulls per-page text from a document on disk.
// Implementations return a descriptive error on unreadable input and
// substitute empty strings for individual unreadable pages.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string) ([]string, error)
}
