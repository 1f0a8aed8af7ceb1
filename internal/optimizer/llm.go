package optimizer

import "context"

// Client is the injected LLM capability: a single synchronous completion
// call. This package never constructs or manages a client; it only
// consumes completions as opaque text. Timeouts and retries, if any,
// belong to the implementation behind this interface.
type Client interface {
	// Complete sends a prompt, optionally framed by an expert persona, and
	// returns the model's text.
	Complete(ctx context.Context, prompt, persona string) (string, error)
}

// ResponseFunc generates a response for a case question given the prompt
// under validation. It is treated as a black-box synchronous call that may
// fail; case sweeps convert failures into empty responses rather than
// aborting.
type ResponseFunc func(prompt, question string) (string, error)
