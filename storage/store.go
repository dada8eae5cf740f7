package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

type PutResult struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStore keeps immutable result documents (category archives) outside the database.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (*PutResult, error)
	PublicURL(key string) string
}

// joinPublicURL resolves key against base. An empty string is returned when
// either part is missing or unparsable.
func joinPublicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}
	keyURL, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(keyURL).String()
}
