package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBuildGetRequest(t *testing.T) {
	builder, err := NewRequestBuilder("  http://example.com/api?x=1 ")
	if err != nil {
		t.Fatalf("expected builder, got error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := builder.Build(ctx)
	if err != nil {
		t.Fatalf("expected request, got error: %v", err)
	}

	if req.Method != http.MethodGet {
		t.Fatalf("expected method GET, got %s", req.Method)
	}
	if req.URL.String() != "http://example.com/api?x=1" {
		t.Fatalf("unexpected URL %s", req.URL.String())
	}
	if req.Context() != ctx {
		t.Fatalf("expected request bound to caller context")
	}
	if req.ContentLength != 0 {
		t.Fatalf("expected empty body, got length %d", req.ContentLength)
	}
	if builder.Target() != "http://example.com/api?x=1" {
		t.Fatalf("unexpected target %q", builder.Target())
	}
}

func TestRequestBuilderRejectsInvalidTargets(t *testing.T) {
	for _, target := range []string{"", "   ", "ftp://example.com", "example.com", "http://", "http://[::1"} {
		if _, err := NewRequestBuilder(target); err == nil {
			t.Errorf("NewRequestBuilder(%q) error = nil, want error", target)
		}
	}
}

func TestBuildNilBuilder(t *testing.T) {
	var b *RequestBuilder
	if _, err := b.Build(context.Background()); err == nil {
		t.Fatal("expected error for nil builder")
	}
}

func TestDrainReadsWholeBody(t *testing.T) {
	payload := strings.Repeat("a", SnippetLimit*4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	snippet, err := Drain(resp)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(snippet) != SnippetLimit {
		t.Fatalf("snippet length = %d, want %d", len(snippet), SnippetLimit)
	}
}

func TestDrainShortBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	snippet, err := Drain(resp)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if strings.TrimSpace(snippet) != "boom" {
		t.Fatalf("snippet = %q, want boom", snippet)
	}
}

func TestDrainNilResponse(t *testing.T) {
	if snippet, err := Drain(nil); err != nil || snippet != "" {
		t.Fatalf("Drain(nil) = %q, %v", snippet, err)
	}
}

func TestClientTimeoutApplied(t *testing.T) {
	timeout := 50 * time.Millisecond
	client := NewClient(timeout)
	defer client.CloseIdleConnections()

	if client.Timeout != timeout {
		t.Fatalf("expected client timeout %s, got %s", timeout, client.Timeout)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(timeout * 3)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if resp != nil {
		resp.Body.Close()
	}
	if err == nil {
		t.Fatalf("expected timeout error, got nil")
	}

	elapsed := time.Since(start)
	if elapsed < timeout {
		t.Fatalf("request returned too quickly: %s < %s", elapsed, timeout)
	}
	if elapsed > timeout*5 {
		t.Fatalf("request took too long: %s", elapsed)
	}

	if !errors.Is(err, context.DeadlineExceeded) {
		var netErr net.Error
		if !errors.As(err, &netErr) || !netErr.Timeout() {
			t.Fatalf("expected timeout error, got %v", err)
		}
	}

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", client.Transport)
	}
	if transport.MaxIdleConns == 0 {
		t.Fatalf("expected transport to allow idle connections")
	}
}

func TestNegativeTimeoutDisablesLimit(t *testing.T) {
	client := NewClient(-time.Second)
	if client.Timeout != 0 {
		t.Fatalf("expected zero timeout, got %s", client.Timeout)
	}
}
