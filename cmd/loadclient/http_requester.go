package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/torosent/loadclient/internal/httpclient"
	"github.com/torosent/loadclient/internal/runner"
	"github.com/torosent/loadclient/internal/tracing"
)

// httpRequester implements runner.Requester with one GET per call. The
// full response body is read before returning so it counts toward latency.
type httpRequester struct {
	client    *http.Client
	builder   *httpclient.RequestBuilder
	tracer    trace.Tracer
	propagate bool
}

func newHTTPRequester(client *http.Client, builder *httpclient.RequestBuilder, provider *tracing.Provider) *httpRequester {
	return &httpRequester{
		client:    client,
		builder:   builder,
		tracer:    provider.Tracer(),
		propagate: provider.ShouldPropagate(),
	}
}

func (r *httpRequester) Do(ctx context.Context) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.builder == nil {
		return errors.New("request builder is not configured")
	}

	ctx, span := tracing.StartRequestSpan(ctx, r.tracer, r.builder.Target())
	status := 0
	defer func() {
		var attrs []attribute.KeyValue
		if status > 0 {
			attrs = append(attrs, attribute.Int("http.response.status_code", status))
		}
		tracing.EndSpan(span, err, attrs...)
	}()

	req, err := r.builder.Build(ctx)
	if err != nil {
		return err
	}
	if r.propagate {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	status = resp.StatusCode

	snippet, err := httpclient.Drain(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &runner.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(snippet),
		}
	}
	return nil
}
