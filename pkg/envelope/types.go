// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package envelope

import "github.com/sirosfoundation/go-httpmulti/pkg/message"

// Media types and header names that make up the envelope wire format.
const (
	// ContentTypeParallel is the media type of an envelope body.
	ContentTypeParallel = "multipart/parallel"
	// ContentTypeHTTPRequest is the media type of a part carrying a request.
	ContentTypeHTTPRequest = "message/http-request"
	// ContentTypeHTTPResponse is the media type of a part carrying a response.
	ContentTypeHTTPResponse = "message/http-response"
	// RequestIDHeader is the part header carrying the correlation ID.
	RequestIDHeader = "Multipart-Request-ID"
)

// RequestSet maps correlation IDs to the requests bundled in one envelope.
// IDs are opaque tokens, unique within a set and compared by equality only.
// A set carries no ordering: the envelope format does not preserve any.
type RequestSet map[string]*message.Request

// ResponseSet maps correlation IDs to the responses bundled in one
// envelope, one entry per answered request.
type ResponseSet map[string]*message.Response
