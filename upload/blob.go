// Package upload implements the upload relay: it accepts a raw file body
// over HTTP and forwards it, unmodified, to the external blob store,
// returning the resulting public URL.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/config"
)

// PutResult is the blob store's response to a successful upload.
type PutResult struct {
	URL string `json:"url"`
}

// UpstreamError carries the blob store's status and response text so the
// relay can pass them through verbatim.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("blob store returned %d: %s", e.Status, e.Body)
}

// BlobStore is a client for the external blob storage API.
type BlobStore struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewBlobStore creates a blob store client from configuration. The client
// carries no timeout of its own; calls are bounded by the request context.
func NewBlobStore(cfg *config.BlobConfig) *BlobStore {
	return &BlobStore{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		client:   &http.Client{},
	}
}

// Put stores one object under the given key and returns its public URL.
// A non-2xx upstream response comes back as an *UpstreamError.
func (b *BlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) (*PutResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.endpoint+"/"+key, body)
	if err != nil {
		return nil, apperror.NewInternalError("failed to build blob store request", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, apperror.NewExternalServiceError("blob store unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewExternalServiceError("failed to read blob store response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(data)}
	}

	var result PutResult
	if err := json.Unmarshal(data, &result); err != nil || result.URL == "" {
		return nil, apperror.NewExternalServiceError("blob store returned no URL", err)
	}
	return &result, nil
}
