package ingest

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource, timeout time.Duration) *http.Client {
	base := &http.Client{Timeout: timeout}
	if ts == nil {
		return base
	}
	c := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	c.Timeout = timeout
	return c
}
