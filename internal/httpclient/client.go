package httpclient

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

// SnippetLimit bounds how much of an error response body is kept for logging.
const SnippetLimit = 512

// RequestBuilder produces GET requests for a single validated target.
type RequestBuilder struct {
	target string
}

func NewRequestBuilder(target string) (*RequestBuilder, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New("target URL is required")
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported target scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("target %q has no host", target)
	}
	return &RequestBuilder{target: u.String()}, nil
}

// Target returns the normalized target URL.
func (b *RequestBuilder) Target() string {
	return b.target
}

func (b *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	if b == nil {
		return nil, errors.New("builder cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, b.target, http.NoBody)
}

// Drain reads the whole response body and closes it. The first SnippetLimit
// bytes are returned so callers can attach them to errors.
func Drain(resp *http.Response) (string, error) {
	if resp == nil || resp.Body == nil {
		return "", nil
	}
	defer resp.Body.Close()

	var head strings.Builder
	if _, err := io.CopyN(&head, resp.Body, SnippetLimit); err != nil && !errors.Is(err, io.EOF) {
		return head.String(), fmt.Errorf("read response body: %w", err)
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return head.String(), fmt.Errorf("read response body: %w", err)
	}
	return head.String(), nil
}

func NewClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
