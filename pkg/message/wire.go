// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package message

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
)

// Wire codec errors.
var (
	ErrMethodRequired     = errors.New("request method is required")
	ErrTargetRequired     = errors.New("request target is required")
	ErrInvalidStatusCode  = errors.New("status code out of range")
	ErrMalformedStartLine = errors.New("malformed start line")
)

// Serialize renders the request as HTTP/1.x octets: request line, header
// fields in canonical sorted order, a blank line, then the body verbatim.
func (r *Request) Serialize() ([]byte, error) {
	if r.Method == "" {
		return nil, ErrMethodRequired
	}
	if r.Target == "" {
		return nil, ErrTargetRequired
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s %s\r\n", r.Method, r.Target, protoOrDefault(r.Proto))
	writeHeader(&buf, r.Header)
	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes(), nil
}

// Serialize renders the response as HTTP/1.x octets. A missing reason
// phrase is filled from the standard text for the status code.
func (r *Response) Serialize() ([]byte, error) {
	if r.StatusCode < 100 || r.StatusCode > 999 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatusCode, r.StatusCode)
	}
	reason := r.Reason
	if reason == "" {
		reason = http.StatusText(r.StatusCode)
	}
	var buf bytes.Buffer
	if reason == "" {
		fmt.Fprintf(&buf, "%s %d\r\n", protoOrDefault(r.Proto), r.StatusCode)
	} else {
		fmt.Fprintf(&buf, "%s %d %s\r\n", protoOrDefault(r.Proto), r.StatusCode, reason)
	}
	writeHeader(&buf, r.Header)
	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes(), nil
}

// ParseRequest parses one HTTP request from its exact octet form. The body
// is everything after the header block; framing fields such as
// Content-Length are kept as ordinary headers and not interpreted.
func ParseRequest(data []byte) (*Request, error) {
	tp := textproto.NewReader(bufio.NewReader(bytes.NewReader(data)))
	line, err := tp.ReadLine()
	if err != nil {
		return nil, fmt.Errorf("reading request line: %w", err)
	}
	method, rest, ok := strings.Cut(line, " ")
	target, proto, ok2 := strings.Cut(rest, " ")
	if !ok || !ok2 || method == "" || target == "" || !strings.HasPrefix(proto, "HTTP/") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedStartLine, line)
	}
	header, body, err := readHeaderAndBody(tp)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: method,
		Target: target,
		Proto:  proto,
		Header: header,
		Body:   body,
	}, nil
}

// ParseResponse parses one HTTP response from its exact octet form. The
// reason phrase may be empty or contain spaces.
func ParseResponse(data []byte) (*Response, error) {
	tp := textproto.NewReader(bufio.NewReader(bytes.NewReader(data)))
	line, err := tp.ReadLine()
	if err != nil {
		return nil, fmt.Errorf("reading status line: %w", err)
	}
	proto, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedStartLine, line)
	}
	statusText, reason, _ := strings.Cut(rest, " ")
	code, convErr := strconv.Atoi(statusText)
	if convErr != nil || code < 100 || code > 999 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedStartLine, line)
	}
	header, body, err := readHeaderAndBody(tp)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: code,
		Reason:     reason,
		Proto:      proto,
		Header:     header,
		Body:       body,
	}, nil
}

func protoOrDefault(proto string) string {
	if proto == "" {
		return ProtoHTTP11
	}
	return proto
}

func writeHeader(buf *bytes.Buffer, h http.Header) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := textproto.CanonicalMIMEHeaderKey(k)
		for _, v := range h[k] {
			fmt.Fprintf(buf, "%s: %s\r\n", name, v)
		}
	}
}

func readHeaderAndBody(tp *textproto.Reader) (http.Header, []byte, error) {
	mh, err := tp.ReadMIMEHeader()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header fields: %w", err)
	}
	body, err := io.ReadAll(tp.R)
	if err != nil {
		return nil, nil, fmt.Errorf("reading body: %w", err)
	}
	if len(body) == 0 {
		body = nil
	}
	return http.Header(mh), body, nil
}
