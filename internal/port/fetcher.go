package port

import "context"

// DocumentFetcher retrieves raw document bytes from a reference such as an
// http(s) URL or an s3:// object key.
type DocumentFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
