// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package message models the individual HTTP requests and responses that are
bundled inside a multipart envelope.

Bundled messages are plain values: the body is a byte slice rather than a
stream, because every message has to be written out and read back as exact
octets when it crosses an envelope boundary.

# Message Types

Request - one HTTP request with its wire fields:
  - Method, Target: the request line exactly as sent
  - Proto: HTTP version, HTTP/1.1 when left empty
  - Header: named header fields
  - Body: raw octets, nil when absent

Response - one HTTP response:
  - StatusCode, Reason: the status line, Reason defaulted from the code
  - Proto, Header, Body: as for Request

# Wire Codec

Serialize renders a message as HTTP/1.x octets: start line, header fields
in canonical sorted order, a blank line, then the body verbatim. Nothing is
added and nothing is re-encoded, so any octet sequence in the body is
carried unchanged.

ParseRequest and ParseResponse reverse the rendering. The body is simply
everything after the blank line; Content-Length and Transfer-Encoding are
ordinary header fields at this layer and are not interpreted, because the
surrounding MIME part already delimits the message.

	req := message.NewRequest("POST", "http://example.com/upload.cgi", []byte("Testing\n"))
	req.Header.Set("Content-Type", "text/plain")

	raw, err := req.Serialize()
	if err != nil {
	    log.Fatal(err)
	}

	back, err := message.ParseRequest(raw)

# References

  - RFC 9112: HTTP/1.1 Message Syntax and Routing
  - RFC 9110: HTTP Semantics
*/
package message
