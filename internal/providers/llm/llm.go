package llm

import "context"

// Provider generates text from a prompt. model may be empty; providers fall
// back to their configured default. Generation is a blocking call from the
// retrieval core's perspective; failures surface as errors and the caller
// degrades to an error answer.
type Provider interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
	// StreamAnswer returns a stream of text chunks (incremental).
	StreamAnswer(ctx context.Context, prompt, model string) (chunks <-chan string, errs <-chan error)
	Close() error
}
