package fopbridge

import (
	"encoding/json"
	"maps"
	"net/http"
)

// MessageResponse is the body of operations that only confirm what happened.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

func (m MessageResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

// Envelope wraps payloads under named keys, e.g. {"task": {...}}, with an
// optional message alongside them.
type Envelope struct {
	fields  map[string]any
	message string
	status  int
}

func NewEnvelope(key string, value any) Envelope {
	return Envelope{fields: map[string]any{key: value}}
}

// With returns a copy of e that also carries value under key.
func (e Envelope) With(key string, value any) Envelope {
	fields := make(map[string]any, len(e.fields)+1)
	maps.Copy(fields, e.fields)
	fields[key] = value
	e.fields = fields
	return e
}

// WithMessage returns a copy of e that also carries message.
func (e Envelope) WithMessage(message string) Envelope {
	e.message = message
	return e
}

// WithStatus returns a copy of e answered with code instead of 200.
func (e Envelope) WithStatus(code int) Envelope {
	e.status = code
	return e
}

func (e Envelope) HTTPStatus() int {
	if e.status == 0 {
		return http.StatusOK
	}
	return e.status
}

func (e Envelope) Encode() ([]byte, string, error) {
	body := make(map[string]any, len(e.fields)+1)
	maps.Copy(body, e.fields)
	if e.message != "" {
		body["message"] = e.message
	}
	data, err := json.Marshal(body)
	return data, "application/json", err
}
