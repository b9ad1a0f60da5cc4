// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	stdmime "mime"
	"net/http"

	"github.com/sirosfoundation/go-httpmulti/pkg/mime"
)

// Envelope format errors, surfaced before any part is read.
var (
	ErrNotParallel = errors.New(`envelope content type is not "multipart/parallel"`)
	ErrNoBoundary  = errors.New("envelope content type has no boundary")
)

// PartError reports a part that could not be decoded while parsing an
// envelope. One bad part fails the whole parse: no partial mapping is
// returned.
type PartError struct {
	Index     int    // position of the part in the container, zero-based
	RequestID string // correlation ID, empty when the ID header is missing
	Err       error
}

func (e *PartError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("part %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("part %d (request id %q): %v", e.Index, e.RequestID, e.Err)
}

func (e *PartError) Unwrap() error { return e.Err }

// Parser recovers correlation mappings from received envelopes. It holds no
// state between calls and is safe for concurrent use when its multipart
// collaborator is.
type Parser struct {
	mime *mime.Parser
}

// NewParser creates a Parser splitting envelope bodies with m. A nil m
// means an in-memory multipart parser.
func NewParser(m *mime.Parser) *Parser {
	if m == nil {
		m = mime.NewParser()
	}
	return &Parser{mime: m}
}

// ParseRequest recovers the request set bundled in a request envelope.
// Parts arrive in whatever order the container yields them; when two parts
// carry the same correlation ID the later one silently replaces the
// earlier. That last-wins behavior is kept for compatibility with existing
// peers, not as a recommendation.
func (p *Parser) ParseRequest(env *http.Request) (RequestSet, error) {
	parts, err := p.split(env.Header.Get("Content-Type"), env.Body)
	if err != nil {
		return nil, err
	}
	set := make(RequestSet, len(parts))
	for i, part := range parts {
		id, sub, err := DecodeRequest(part)
		if err != nil {
			return nil, &PartError{Index: i, RequestID: id, Err: err}
		}
		set[id] = sub
	}
	return set, nil
}

// ParseResponse recovers the response set bundled in a response envelope.
// The outer status code is not inspected: callers decide what counts as a
// successful exchange before parsing. Duplicate correlation IDs behave as
// in ParseRequest.
func (p *Parser) ParseResponse(env *http.Response) (ResponseSet, error) {
	parts, err := p.split(env.Header.Get("Content-Type"), env.Body)
	if err != nil {
		return nil, err
	}
	set := make(ResponseSet, len(parts))
	for i, part := range parts {
		id, sub, err := DecodeResponse(part)
		if err != nil {
			return nil, &PartError{Index: i, RequestID: id, Err: err}
		}
		set[id] = sub
	}
	return set, nil
}

// split validates the outer content type and hands the body to the
// multipart collaborator.
func (p *Parser) split(contentType string, body io.Reader) ([]mime.Part, error) {
	mediaType, params, err := stdmime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parsing envelope content type: %w", err)
	}
	if mediaType != ContentTypeParallel {
		return nil, fmt.Errorf("%w: %s", ErrNotParallel, mediaType)
	}
	if params["boundary"] == "" {
		return nil, ErrNoBoundary
	}

	if body == nil {
		body = bytes.NewReader(nil)
	}
	parts, err := p.mime.Parse(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("splitting envelope body: %w", err)
	}
	return parts, nil
}
