package request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event identifies a callback slot.
type Event int

const (
	EventLoading Event = iota
	EventSuccess
	EventError
	EventFail
)

func (e Event) String() string {
	switch e {
	case EventLoading:
		return "loading"
	case EventSuccess:
		return "success"
	case EventError:
		return "error"
	case EventFail:
		return "fail"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

type (
	// LoadingFunc fires once when a logical request starts.
	LoadingFunc func()
	// SuccessFunc receives a 2xx body.
	SuccessFunc func(body Payload)
	// ErrorFunc receives a non-2xx status and its body.
	ErrorFunc func(status int, body Payload)
	// FailFunc receives the cause of a failed logical request.
	FailFunc func(err error)
)

var defaultTransport Transport = NewHTTPTransport(nil)

// Coordinator drives one logical request at a time against a fixed endpoint.
type Coordinator struct {
	spec      Spec
	transport Transport
	logger    zerolog.Logger
	wait      func(ctx context.Context, d time.Duration) error
	newID     func() string

	// buildErr is set when an option could not be applied; every logical
	// request then fails without an attempt.
	buildErr error

	// disposal token; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	inFlight     bool
	attemptIndex int
	closed       bool
	done         chan struct{}

	onLoading LoadingFunc
	onSuccess SuccessFunc
	onError   ErrorFunc
	onFail    FailFunc
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMethod sets the HTTP method. The default is GET.
func WithMethod(method string) Option {
	return func(c *Coordinator) {
		if method != "" {
			c.spec.Method = method
		}
	}
}

// WithBody sets a payload that is re-sent verbatim on every attempt.
func WithBody(body []byte, contentType string) Option {
	return func(c *Coordinator) {
		c.spec.Body = body
		c.spec.ContentType = contentType
	}
}

// WithJSONBody marshals v as the request payload. If v cannot be marshalled
// no attempt is made and every Initiate ends in OnFail.
func WithJSONBody(v any) Option {
	return func(c *Coordinator) {
		data, err := json.Marshal(v)
		if err != nil {
			c.buildErr = fmt.Errorf("marshal request body: %w", err)
			return
		}
		c.spec.Body = data
		c.spec.ContentType = "application/json"
	}
}

// WithEmptySuccess treats a 2xx reply without a body as a success. By default
// such a reply is a parse failure.
func WithEmptySuccess() Option {
	return func(c *Coordinator) {
		c.spec.EmptySuccess = true
	}
}

// WithHeader adds a request header.
func WithHeader(name, value string) Option {
	return func(c *Coordinator) {
		if c.spec.Header == nil {
			c.spec.Header = make(http.Header)
		}
		c.spec.Header.Add(name, value)
	}
}

// WithTimeout sets the per-attempt timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.spec.Timeout = d
		}
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Coordinator) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger used for attempt tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// New builds a coordinator for endpoint.
func New(endpoint string, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	close(done)

	c := &Coordinator{
		spec: Spec{
			Endpoint:   endpoint,
			Method:     http.MethodGet,
			Timeout:    DefaultTimeout,
			MaxRetries: MaxRetries,
		},
		transport: defaultTransport,
		logger:    zerolog.Nop(),
		wait:      sleepContext,
		newID:     uuid.NewString,
		ctx:       ctx,
		cancel:    cancel,
		done:      done,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Spec returns the request description.
func (c *Coordinator) Spec() Spec {
	return c.spec
}

// OnLoading registers the loading callback, replacing any previous one.
func (c *Coordinator) OnLoading(fn LoadingFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLoading = fn
}

// OnSuccess registers the success callback, replacing any previous one.
func (c *Coordinator) OnSuccess(fn SuccessFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSuccess = fn
}

// OnError registers the application-error callback, replacing any previous one.
func (c *Coordinator) OnError(fn ErrorFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// OnFail registers the failure callback, replacing any previous one.
func (c *Coordinator) OnFail(fn FailFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFail = fn
}

// Register stores fn in the slot for event. fn must match the slot's
// signature; a nil fn clears the slot.
func (c *Coordinator) Register(event Event, fn any) error {
	switch event {
	case EventLoading:
		switch f := fn.(type) {
		case nil:
			c.OnLoading(nil)
		case LoadingFunc:
			c.OnLoading(f)
		case func():
			c.OnLoading(f)
		default:
			return fmt.Errorf("register %s: unsupported handler %T", event, fn)
		}
	case EventSuccess:
		switch f := fn.(type) {
		case nil:
			c.OnSuccess(nil)
		case SuccessFunc:
			c.OnSuccess(f)
		case func(Payload):
			c.OnSuccess(f)
		default:
			return fmt.Errorf("register %s: unsupported handler %T", event, fn)
		}
	case EventError:
		switch f := fn.(type) {
		case nil:
			c.OnError(nil)
		case ErrorFunc:
			c.OnError(f)
		case func(int, Payload):
			c.OnError(f)
		default:
			return fmt.Errorf("register %s: unsupported handler %T", event, fn)
		}
	case EventFail:
		switch f := fn.(type) {
		case nil:
			c.OnFail(nil)
		case FailFunc:
			c.OnFail(f)
		case func(error):
			c.OnFail(f)
		default:
			return fmt.Errorf("register %s: unsupported handler %T", event, fn)
		}
	default:
		return fmt.Errorf("register: unknown event %d", int(event))
	}
	return nil
}

// InFlight reports whether a logical request is outstanding.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Initiate starts a logical request unless one is already outstanding or the
// coordinator has been closed. The loading callback runs before Initiate
// returns; every other callback runs on the coordinator goroutine.
func (c *Coordinator) Initiate() {
	c.mu.Lock()
	if c.inFlight || c.closed {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.attemptIndex = 0
	done := make(chan struct{})
	c.done = done
	onLoading := c.onLoading
	c.mu.Unlock()

	id := c.newID()
	logger := c.logger.With().
		Str("request_id", id).
		Str("method", c.spec.Method).
		Str("endpoint", c.spec.Endpoint).
		Logger()
	logger.Debug().Msg("request started")

	if onLoading != nil {
		onLoading()
	}
	go c.run(id, logger, done)
}

// Wait blocks until the current logical request, if any, has finished.
func (c *Coordinator) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	<-done
}

// Close disposes the coordinator. A pending retry never runs and the
// outstanding sequence delivers no further callbacks.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

func (c *Coordinator) run(id string, logger zerolog.Logger, done chan struct{}) {
	defer close(done)

	if c.buildErr != nil {
		c.fail(logger, Outcome{Kind: KindUnclassified, Err: c.buildErr}, 0)
		return
	}

	// In-progress attempts are not cancelled by Close; only their outcome is dropped.
	attemptCtx := WithRequestID(context.WithoutCancel(c.ctx), id)

	for {
		c.mu.Lock()
		attempt := c.attemptIndex
		c.mu.Unlock()

		started := time.Now()
		out := c.transport.Attempt(attemptCtx, c.spec)
		elapsed := time.Since(started)

		if c.ctx.Err() != nil {
			logger.Debug().Int("attempt", attempt).Msg("coordinator closed, outcome discarded")
			c.finish()
			return
		}

		switch out.Kind {
		case KindSuccess:
			logger.Info().
				Int("attempt", attempt).
				Int("status", out.StatusCode).
				Dur("elapsed", elapsed).
				Msg("request succeeded")
			c.mu.Lock()
			fn, closed := c.onSuccess, c.closed
			c.mu.Unlock()
			if closed {
				logger.Debug().Msg("coordinator closed, success discarded")
			} else if fn != nil {
				fn(out.Body)
			}
			c.finish()
			return

		case KindApplicationError:
			logger.Warn().
				Int("attempt", attempt).
				Int("status", out.StatusCode).
				Str("body", truncateBody(out.Body.String())).
				Msg("request rejected")
			c.mu.Lock()
			fn, closed := c.onError, c.closed
			c.mu.Unlock()
			if closed {
				logger.Debug().Msg("coordinator closed, error discarded")
			} else if fn != nil {
				fn(out.StatusCode, out.Body)
			}
			c.finish()
			return

		case KindTransportFailure:
			if attempt < c.spec.MaxRetries {
				delay := retryDelay(attempt)
				logger.Warn().
					Err(out.Err).
					Int("attempt", attempt).
					Dur("retry_in", delay).
					Msg("transport failure, retrying")
				c.mu.Lock()
				c.attemptIndex++
				c.mu.Unlock()
				if err := c.wait(c.ctx, delay); err != nil {
					logger.Debug().Msg("coordinator closed during backoff")
					c.finish()
					return
				}
				continue
			}
			c.fail(logger, out, attempt+1)
			return

		default:
			c.fail(logger, out, attempt+1)
			return
		}
	}
}

// fail delivers the terminal failure after the given number of attempts.
func (c *Coordinator) fail(logger zerolog.Logger, out Outcome, attempts int) {
	kind := out.Kind
	if kind != KindTransportFailure && kind != KindParseFailure {
		kind = KindUnclassified
	}
	cause := out.Err
	if cause == nil {
		cause = fmt.Errorf("%s", kind)
	}
	err := &Error{Kind: kind, Attempts: attempts, Err: cause}
	logger.Error().Err(err).Int("attempts", attempts).Msg("request failed")

	c.mu.Lock()
	fn, closed := c.onFail, c.closed
	c.mu.Unlock()
	if closed {
		logger.Debug().Msg("coordinator closed, failure discarded")
	} else if fn != nil {
		fn(err)
	}
	c.finish()
}

func (c *Coordinator) finish() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

func truncateBody(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
