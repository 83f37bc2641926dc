package api

import (
	"context"
	"time"
)

// FetchTimeout is the default timeout for remote dataset downloads
const FetchTimeout = 5 * time.Minute

// WithFetchTimeout creates a context with the dataset download timeout
func WithFetchTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, FetchTimeout)
}
