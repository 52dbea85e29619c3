// Package rest contains the HTTP clients for collaborator services. Every
// call is addressed through the gateway's logical path prefixes and bounded
// by the configured client timeout; nothing here retries.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cafekit/orderflow/internal/pkg/apperr"
)

// NewHTTPClient builds the shared client with the downstream call bound.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// errorBody is the structured error payload every service renders.
type errorBody struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func getJSON(ctx context.Context, hc *http.Client, url string, out any, notFound apperr.Kind) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindDownstreamUnavailable, err, "build request for %s", url)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindDownstreamUnavailable, err, "call %s failed", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp, notFound)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindDownstreamUnavailable, err, "decode response from %s", url)
	}
	return nil
}

func postJSON(ctx context.Context, hc *http.Client, url string, in any) (*http.Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, err, "encode request for %s", url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, err, "build request for %s", url)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, err, "call %s failed", url)
	}
	return resp, nil
}

// remoteError turns a non-2xx response into a taxonomy error. The remote kind
// wins when present; otherwise 404 falls back to the caller's not-found kind.
func remoteError(resp *http.Response, notFound apperr.Kind) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Kind != "" {
		return apperr.New(apperr.Kind(body.Kind), "%s", body.Error)
	}
	if resp.StatusCode == http.StatusNotFound && notFound != "" {
		return apperr.New(notFound, "%s returned 404", resp.Request.URL.Path)
	}
	return apperr.New(apperr.KindDownstreamUnavailable,
		"%s returned status %d: %s", resp.Request.URL.Path, resp.StatusCode, bytes.TrimSpace(raw))
}

func joinURL(base, path string) string {
	return fmt.Sprintf("%s%s", base, path)
}
