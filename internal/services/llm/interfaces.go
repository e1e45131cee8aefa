package llm

import "context"

// Client is the language-model collaborator: prompt in, raw response text
// out. Responses may be malformed or non-JSON; callers own parsing.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
