// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package envelope builds and parses multipart/parallel envelopes: single
outer HTTP messages that bundle many independent HTTP requests or
responses, one per MIME part, each part tagged with a correlation ID.

A client sends one POST carrying N requests; the receiving side answers
with one 207 Multi-Status response carrying N responses under the same
correlation IDs. The envelope format itself is the whole contract - it
does not schedule, retry, or parallelize anything.

# Wire Format

A request envelope is an HTTP POST whose body is a multipart/parallel
container. Each part carries one bundled message in exact HTTP/1.x wire
form:

	POST /batch HTTP/1.1
	Content-Type: multipart/parallel; boundary="----=_Part_..."

	------=_Part_...
	Content-Type: message/http-request
	Content-Disposition: inline
	Content-Transfer-Encoding: binary
	Mime-Version: 1.0
	Multipart-Request-Id: 1

	GET /1.html HTTP/1.1
	Host: example.com

	------=_Part_...

A response envelope is identical in shape, with outer status 207
Multi-Status, part content type message/http-response, and part bodies
holding response wire form. Part bodies ride as binary octets - never
base64 or quoted-printable - so any payload round-trips byte for byte.

# Building

	reqs := envelope.RequestSet{
	    "1": message.NewRequest("GET", "http://example.com/1.html", nil),
	    "2": message.NewRequest("GET", "http://example.com/2.html", nil),
	}
	env, err := envelope.NewRequest("http://gateway.example.com/batch", reqs, nil)

# Parsing

	parser := envelope.NewParser(nil)
	reqs, err := parser.ParseRequest(env)

Parsing is all or nothing: a part without a Multipart-Request-ID header,
or whose body is not a well-formed HTTP message, fails the whole parse
with a *PartError identifying the offending part. An envelope whose outer
Content-Type is not multipart/parallel with a boundary is rejected before
any part is read.

Correlation IDs are opaque and unordered. When a received envelope carries
two parts with the same ID, the later part wins silently; this matches
deployed peers and is locked in by tests, but senders must not rely on it.

# References

  - RFC 2046 §5.1: Multipart Media Type
  - RFC 9112: HTTP/1.1 Message Syntax and Routing
*/
package envelope
