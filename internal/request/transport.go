package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// HeaderRequestID carries the id shared by all attempts of one logical request.
	HeaderRequestID = "X-Request-ID"

	defaultUserAgent = "songmatch/0.1"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 8 << 20
)

// Spec is the immutable description of a coordinated request.
type Spec struct {
	Endpoint    string
	Method      string
	Body        []byte
	ContentType string
	Header      http.Header
	Timeout     time.Duration
	MaxRetries  int

	// EmptySuccess accepts a 2xx reply without a body as a success.
	EmptySuccess bool
}

// Transport performs one physical attempt and classifies its result.
type Transport interface {
	Attempt(ctx context.Context, spec Spec) Outcome
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, spec Spec) Outcome

// Attempt calls f.
func (f TransportFunc) Attempt(ctx context.Context, spec Spec) Outcome {
	return f(ctx, spec)
}

// Ensure HTTPTransport implements Transport at compile time.
var _ Transport = (*HTTPTransport)(nil)

// HTTPTransport sends attempts with net/http.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewHTTPTransport builds a transport around client. A nil client uses a
// fresh http.Client; timeouts come from the Spec, not the client.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{client: client, userAgent: defaultUserAgent, maxBody: maxBodyBytes}
}

// Attempt issues spec once, bounded by spec.Timeout.
func (t *HTTPTransport) Attempt(ctx context.Context, spec Spec) Outcome {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	var body io.Reader = http.NoBody
	if spec.Body != nil {
		body = bytes.NewReader(spec.Body)
	}
	req, err := http.NewRequestWithContext(ctx, spec.Method, spec.Endpoint, body)
	if err != nil {
		return Outcome{Kind: KindUnclassified, Err: fmt.Errorf("create request: %w", err)}
	}
	for name, values := range spec.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if spec.ContentType != "" {
		req.Header.Set("Content-Type", spec.ContentType)
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		req.Header.Set(HeaderRequestID, id)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Outcome{Kind: classifyError(err), Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	if err != nil {
		return Outcome{Kind: classifyError(err), StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if int64(len(raw)) > t.maxBody {
		raw = raw[:t.maxBody]
		// Error bodies are only shown to the user, so a cut one is still useful.
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return Outcome{
				Kind:       KindParseFailure,
				StatusCode: resp.StatusCode,
				Err:        &DecodeError{Err: fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, t.maxBody)},
			}
		}
	}
	return classifyResponse(resp.StatusCode, raw, spec.EmptySuccess)
}

type requestIDKey struct{}

// WithRequestID attaches a request id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
