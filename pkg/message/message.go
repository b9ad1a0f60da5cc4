// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package message

import "net/http"

// HTTP protocol version strings used on start lines.
const (
	ProtoHTTP10 = "HTTP/1.0"
	ProtoHTTP11 = "HTTP/1.1"
)

// Request is one HTTP request carried inside a multipart envelope.
//
// Target holds the request-target exactly as it appears on the request
// line, typically an absolute URL when the request is destined for another
// origin. A zero Proto serializes as HTTP/1.1.
type Request struct {
	Method string
	Target string
	Proto  string
	Header http.Header
	Body   []byte
}

// Response is one HTTP response carried inside a multipart envelope.
//
// Reason is the status line's reason phrase; when empty it serializes as
// the standard text for StatusCode. A zero Proto serializes as HTTP/1.1.
type Response struct {
	StatusCode int
	Reason     string
	Proto      string
	Header     http.Header
	Body       []byte
}

// NewRequest creates a Request with an initialized header map. A nil or
// empty body means the request carries no body.
func NewRequest(method, target string, body []byte) *Request {
	if len(body) == 0 {
		body = nil
	}
	return &Request{
		Method: method,
		Target: target,
		Proto:  ProtoHTTP11,
		Header: make(http.Header),
		Body:   body,
	}
}

// NewResponse creates a Response with an initialized header map. Reason is
// filled from the standard text for the status code when one exists.
func NewResponse(status int, body []byte) *Response {
	if len(body) == 0 {
		body = nil
	}
	return &Response{
		StatusCode: status,
		Reason:     http.StatusText(status),
		Proto:      ProtoHTTP11,
		Header:     make(http.Header),
		Body:       body,
	}
}
