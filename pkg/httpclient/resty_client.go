package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A nil log keeps resty's default stderr logger.
func NewRestyClient(timeout time.Duration, log resty.Logger) *RestyClient {
	c := newRestyBaseClient(timeout)
	if log != nil {
		c.SetLogger(log)
	}
	return &RestyClient{client: c}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// Do performs the request described by req.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	switch {
	case req.FormData != nil:
		rr.SetFormData(req.FormData)
	case req.Body != nil:
		rr.SetBody(req.Body)
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

func (r *restyResponseAdapter) StatusText() string {
	return ReasonPhrase(r.resp.Status(), r.resp.StatusCode())
}

// ReasonPhrase strips the numeric code from a status line such as "404 Not Found".
// An empty status line yields an empty phrase; callers decide the fallback.
func ReasonPhrase(status string, code int) string {
	status = strings.TrimSpace(status)
	prefix := strconv.Itoa(code)
	if strings.HasPrefix(status, prefix) {
		status = strings.TrimSpace(strings.TrimPrefix(status, prefix))
	}
	return status
}
