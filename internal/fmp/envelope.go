package fmp

import (
	"bytes"
	"encoding/json"
)

// ErrorKind classifies a failed upstream call.
type ErrorKind string

const (
	// KindHTTPError means FMP responded with a non-2xx status.
	KindHTTPError ErrorKind = "http-error"
	// KindRequestError means the request could not be completed
	// (DNS failure, connection refused, timeout).
	KindRequestError ErrorKind = "request-error"
	// KindUnknownError covers everything else, including malformed JSON.
	KindUnknownError ErrorKind = "unknown-error"
)

// APIError describes a failed upstream call in a form clients can branch on.
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Detail  string    `json:"detail,omitempty"` // status code for http-error
	Message string    `json:"message"`
}

// Envelope is the uniform result of every FMP call. Failures are data,
// not errors: callers always receive a well-formed envelope and branch
// on OK instead of handling exceptions.
type Envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Count int             `json:"count"`
	Error *APIError       `json:"error,omitempty"`
}

// emptyList is the failure-path payload so callers can range over Data
// uniformly regardless of outcome.
var emptyList = json.RawMessage("[]")

// Success wraps an upstream JSON body. Count is the list length for
// array bodies and 1 otherwise, giving callers a cardinality signal
// without inspecting the payload shape.
func Success(data json.RawMessage) Envelope {
	return Envelope{
		OK:    true,
		Data:  data,
		Count: countRecords(data),
	}
}

// Failure builds the failure envelope for the given error kind.
func Failure(kind ErrorKind, detail, message string) Envelope {
	return Envelope{
		OK:   false,
		Data: emptyList,
		Error: &APIError{
			Kind:    kind,
			Detail:  detail,
			Message: message,
		},
	}
}

// countRecords returns the number of top-level records in a JSON body.
func countRecords(data json.RawMessage) int {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	if trimmed[0] != '[' {
		return 1
	}
	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return 1
	}
	return len(records)
}
