package changelog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteTimeout bounds remote changelog fetches when the caller's
// context carries no deadline of its own.
const DefaultRemoteTimeout = 5 * time.Second

// IsRemote reports whether a changelog location is an HTTP(S) URL rather
// than a local file path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Resolve loads a changelog from a local path or, for http(s) locations,
// over the network.
func Resolve(ctx context.Context, location string) (*Document, error) {
	if IsRemote(location) {
		return FetchRemote(ctx, location)
	}
	return Load(location)
}

// FetchRemote fetches and parses a changelog document from a URL.
// A 404 response or transport failure returns *NotFoundError so callers
// treat an unreachable changelog the same way as a missing file.
func FetchRemote(ctx context.Context, url string) (*Document, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRemoteTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &NotFoundError{Path: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Path: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching changelog %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching changelog %s: %w", url, err)
	}
	doc.Path = url
	return doc, nil
}
