package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Kind classifies the result of one physical attempt.
type Kind int

const (
	KindSuccess Kind = iota
	KindApplicationError
	KindTransportFailure
	KindParseFailure
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindApplicationError:
		return "application error"
	case KindTransportFailure:
		return "transport failure"
	case KindParseFailure:
		return "parse failure"
	default:
		return "unclassified error"
	}
}

// Outcome is the classified result of a single physical attempt.
type Outcome struct {
	Kind       Kind
	StatusCode int
	Body       Payload
	Err        error
}

var (
	// ErrNotJSON is returned by Payload.Decode when the body is not JSON.
	ErrNotJSON = errors.New("payload is not JSON")

	// ErrEmptyBody reports a 2xx reply without content on a request that
	// expects one.
	ErrEmptyBody = errors.New("response body is empty")

	// ErrBodyTooLarge reports a 2xx reply larger than the transport reads.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Payload carries a response body exactly as the backend sent it.
type Payload struct {
	raw   []byte
	valid bool
}

// NewPayload wraps raw response bytes.
func NewPayload(raw []byte) Payload {
	return Payload{raw: raw, valid: len(bytes.TrimSpace(raw)) > 0 && json.Valid(raw)}
}

// Bytes returns the raw body.
func (p Payload) Bytes() []byte {
	return p.raw
}

// IsJSON reports whether the body decodes as JSON.
func (p Payload) IsJSON() bool {
	return p.valid
}

// Empty reports whether the body had no content besides whitespace.
func (p Payload) Empty() bool {
	return len(bytes.TrimSpace(p.raw)) == 0
}

// Decode unmarshals the body into dst.
func (p Payload) Decode(dst any) error {
	if !p.valid {
		return ErrNotJSON
	}
	return json.Unmarshal(p.raw, dst)
}

func (p Payload) String() string {
	return strings.TrimSpace(string(p.raw))
}

// classifyResponse turns a completed exchange into an Outcome. An empty 2xx
// body is a success only when emptyOK is set.
func classifyResponse(status int, raw []byte, emptyOK bool) Outcome {
	body := NewPayload(raw)
	if status < 200 || status > 299 {
		return Outcome{Kind: KindApplicationError, StatusCode: status, Body: body}
	}
	if body.IsJSON() || (emptyOK && body.Empty()) {
		return Outcome{Kind: KindSuccess, StatusCode: status, Body: body}
	}
	if body.Empty() {
		return Outcome{Kind: KindParseFailure, StatusCode: status, Body: body, Err: &DecodeError{Err: ErrEmptyBody}}
	}
	var v any
	err := json.Unmarshal(raw, &v)
	if err == nil {
		err = ErrNotJSON
	}
	return Outcome{Kind: KindParseFailure, StatusCode: status, Body: body, Err: &DecodeError{Err: err}}
}
