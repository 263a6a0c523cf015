package completion

import "context"

// Client is the completion-service dependency: given a system prompt and
// a user message it returns the model's raw text. Implementations must
// bound the wait; a stalled provider fails the call instead of hanging
// the caller's turn.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
