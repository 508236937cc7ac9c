// Package publisher abstracts the outbound call to a social platform. The
// scheduler only depends on the Publisher interface; the LinkedIn and
// Instagram clients are the concrete bindings.
package publisher

import (
	"context"
	"errors"
	"time"
)

// ErrAuthExpired marks a rejected token. Not retryable; an operator has to
// provision a fresh token.
var ErrAuthExpired = errors.New("platform auth token expired or invalid")

// ErrPublishFailed marks a network or platform error. Retryable at the next
// scheduled trigger; no retry happens within the same trigger.
var ErrPublishFailed = errors.New("publish failed")

// PublishTimeout bounds every outbound publish call.
const PublishTimeout = 30 * time.Second

// Publisher posts content to one social platform. No call is idempotent: a
// retried call may create a duplicate remote post, so callers record the
// attempt before retrying.
type Publisher interface {
	// PostText publishes a text post and returns the platform post id.
	PostText(ctx context.Context, body string) (string, error)
	// PostImage publishes a post with an attached local image file.
	PostImage(ctx context.Context, body, imagePath string) (string, error)
	// PostReply publishes a comment under an earlier post and returns the
	// comment id.
	PostReply(ctx context.Context, parentPostID, body string) (string, error)
}
