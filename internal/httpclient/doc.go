// Package httpclient builds the shared HTTP client and the GET requests sent
// by loadclient.
//
// A single [http.Client] from [NewClient] is shared by every request of a run,
// so all requests draw from one connection pool. The client timeout bounds a
// whole round trip including the body read; zero disables it.
//
//	builder, err := httpclient.NewRequestBuilder(cfg.TargetURL)
//	if err != nil {
//		return err
//	}
//	req, err := builder.Build(ctx)
//	resp, err := client.Do(req)
//	snippet, err := httpclient.Drain(resp)
//
// [Drain] consumes the full body because body retrieval is part of the
// measured latency.
package httpclient
