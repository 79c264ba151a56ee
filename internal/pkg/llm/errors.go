package llm

import "github.com/pkg/errors"

// Failure classes for moderation calls. Schema errors are terminal;
// timeout and transport errors are retried by the caller loop.
var (
	ErrModerationTimeout   = errors.New("moderation model call timed out")
	ErrModerationTransport = errors.New("moderation model call failed")
	ErrModerationSchema    = errors.New("moderation model returned malformed payload")
)
