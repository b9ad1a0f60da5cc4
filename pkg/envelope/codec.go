// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package envelope

import (
	"errors"
	"net/textproto"
	"strings"

	"github.com/sirosfoundation/go-httpmulti/pkg/message"
	"github.com/sirosfoundation/go-httpmulti/pkg/mime"
)

// ErrMissingRequestID reports a part without a Multipart-Request-ID header.
var ErrMissingRequestID = errors.New("part has no Multipart-Request-ID header")

// EncodeRequest renders one request as a MIME part. The part body is the
// exact wire serialization of the request; the correlation ID rides in the
// Multipart-Request-ID header.
func EncodeRequest(id string, req *message.Request) (mime.Part, error) {
	wire, err := req.Serialize()
	if err != nil {
		return mime.Part{}, err
	}
	return newPart(ContentTypeHTTPRequest, id, wire), nil
}

// EncodeResponse renders one response as a MIME part.
func EncodeResponse(id string, resp *message.Response) (mime.Part, error) {
	wire, err := resp.Serialize()
	if err != nil {
		return mime.Part{}, err
	}
	return newPart(ContentTypeHTTPResponse, id, wire), nil
}

// DecodeRequest recovers a correlation ID and request from a parsed part.
// When the part body fails to parse, the ID is still returned alongside the
// error if the header was present.
func DecodeRequest(part mime.Part) (string, *message.Request, error) {
	id, err := partID(part)
	if err != nil {
		return "", nil, err
	}
	req, err := message.ParseRequest(part.Body)
	if err != nil {
		return id, nil, err
	}
	return id, req, nil
}

// DecodeResponse recovers a correlation ID and response from a parsed part.
func DecodeResponse(part mime.Part) (string, *message.Response, error) {
	id, err := partID(part)
	if err != nil {
		return "", nil, err
	}
	resp, err := message.ParseResponse(part.Body)
	if err != nil {
		return id, nil, err
	}
	return id, resp, nil
}

// newPart wraps serialized message octets in a part with the envelope's
// fixed header set. The transfer encoding is always binary so that any body
// octets survive the container unchanged.
func newPart(contentType, id string, wire []byte) mime.Part {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", "inline")
	h.Set("Content-Transfer-Encoding", "binary")
	h.Set("MIME-Version", "1.0")
	h.Set(RequestIDHeader, id)
	return mime.Part{Header: h, Body: wire}
}

func partID(part mime.Part) (string, error) {
	id := part.Header.Get(RequestIDHeader)
	if id == "" {
		return "", ErrMissingRequestID
	}
	return strings.TrimRight(id, "\r\n"), nil
}
