package bundles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBundleSize caps how much of a remote response is read. Larger bodies
// are refused rather than truncated.
const maxBundleSize = 32 << 20

// HTTPRepository fetches bundles with GET {baseURL}/{id}.
type HTTPRepository struct {
	baseURL string
	token   string
	client  *http.Client
	maxSize int64
}

// NewHTTPRepository builds a repository whose every request is bounded by
// timeout. token, when set, is sent as a bearer credential.
func NewHTTPRepository(baseURL string, timeout time.Duration, token string) *HTTPRepository {
	return &HTTPRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		maxSize: maxBundleSize,
	}
}

func (r *HTTPRepository) Get(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", id, err)
	}
	req.Header.Set("Accept", "application/fhir+json, application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode == http.StatusGatewayTimeout || resp.StatusCode == http.StatusRequestTimeout:
		return nil, fmt.Errorf("%w: %s: upstream status %d", ErrTimeout, id, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s: upstream status %d", ErrNetwork, id, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxSize+1))
	if err != nil {
		return nil, classifyTransportError(id, err)
	}
	if int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%w: %s: response body exceeds %d bytes", ErrNetwork, id, r.maxSize)
	}
	return data, nil
}

func classifyTransportError(id string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, id, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrNetwork, id, err)
}
