package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// kindAliases names the concrete error types a GET round trip can return.
var kindAliases = map[string]string{
	"*runner.HTTPError": "HTTP error response",
	"*url.Error":        "Request URL error",
	"*net.OpError":      "Network error",
	"*net.DNSError":     "DNS error",
}

// ErrorKind classifies a request failure for log output.
// Timeouts and cancellations are detected through wrapping before falling
// back to the dynamic type name.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Context deadline exceeded"
	}
	if errors.Is(err, context.Canceled) {
		return "Request canceled"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Request timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "Network error"
	}
	if kind, ok := kindAliases[fmt.Sprintf("%T", err)]; ok {
		return kind
	}
	return "Request error"
}
