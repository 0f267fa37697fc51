package httpclients

import (
	"context"
	"time"

	"visioneer-server/internal/infrastructure/logger"

	"resty.dev/v3"
)

type RequestID struct{}
type HTTPClientStartsAt struct{}

// NewClient builds a resty client that logs every outbound request
// with latency and status, tagged with clientName. Bodies are not
// logged; image payloads can run to megabytes of base64.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		ctx := context.WithValue(r.Context(), HTTPClientStartsAt{}, time.Now())
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		requestID := r.Request.Context().Value(RequestID{})
		startTime, _ := r.Request.Context().Value(HTTPClientStartsAt{}).(time.Time)
		latency := time.Since(startTime)

		requestIDStr := ""
		if reqID, ok := requestID.(string); ok {
			requestIDStr = reqID
		}

		log.Debug().
			Str("request_id", requestIDStr).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Str("method", r.Request.RawRequest.Method).
			Str("path", r.Request.RawRequest.URL.Path).
			Dur("latency", latency).
			Msg("HTTP client request")
		return nil
	})
	return client
}
