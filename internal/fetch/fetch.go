// Package fetch retrieves raw document bytes from external references.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"billex/internal/domain"
	"billex/internal/port"
)

// Dispatcher routes a document reference to the fetcher matching its scheme.
type Dispatcher struct {
	http port.DocumentFetcher
	s3   port.DocumentFetcher
}

// NewDispatcher creates a Dispatcher. The s3 fetcher may be nil, in which
// case s3:// references are rejected.
func NewDispatcher(httpFetcher, s3Fetcher port.DocumentFetcher) *Dispatcher {
	return &Dispatcher{http: httpFetcher, s3: s3Fetcher}
}

// Fetch dispatches on the reference scheme.
func (d *Dispatcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return d.http.Fetch(ctx, ref)
	case strings.HasPrefix(ref, "s3://"):
		if d.s3 == nil {
			return nil, fmt.Errorf("%w: s3 references not configured", domain.ErrDownloadFailed)
		}
		return d.s3.Fetch(ctx, ref)
	default:
		return nil, fmt.Errorf("%w: unsupported document reference %q", domain.ErrDownloadFailed, ref)
	}
}
