// Package search defines the service-client boundary the harness drives.
// The harness needs only the Client capability; anything that can execute a
// template and report server time, hit count and an outcome will do.
package search

import (
	"context"
	"fmt"

	"searchbench/internal/catalog"
)

// Outcome is the classified result of one request attempt. TookMs and
// TotalHits are only set on success; Err is nil on success.
type Outcome struct {
	TookMs    *float64
	TotalHits *int64
	Err       *RequestError
}

// RequestError carries an explicit error kind plus message instead of
// relying on error types for classification.
type RequestError struct {
	Kind    string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Error kinds recorded in result statuses.
const (
	KindConnection = "ConnectionError"
	KindTimeout    = "Timeout"
	KindRequest    = "RequestError"
	KindServer     = "ServerError"
	KindResponse   = "ResponseError"
)

// Client executes catalog templates against the target service. ClearCache
// is best-effort; callers treat its failure as non-fatal. Implementations
// must be safe for concurrent use.
type Client interface {
	Execute(ctx context.Context, tpl catalog.Template) Outcome
	ClearCache(ctx context.Context) error
}
