package httpclient

import "context"

// Request describes a single outbound call. Body and FormData are mutually exclusive;
// FormData is sent url-encoded.
type Request struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     []byte
	FormData map[string]string
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	// StatusText is the reason phrase of the status line, without the numeric code.
	StatusText() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Non-2xx statuses are not errors; only transport failures are.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
