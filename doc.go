// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gohttpmulti implements HTTP request and response bundling over
MIME multipart envelopes, letting a client exchange many HTTP messages
in a single round trip.

# Overview

go-httpmulti packs independent HTTP requests into one outer POST whose
body is a multipart/parallel MIME document. Each part carries one
serialized HTTP message and a Multipart-Request-ID header; the receiver
answers with a 207 Multi-Status envelope whose parts reuse the same IDs,
so every response can be correlated back to the request that produced
it. Parts are self-contained and order-independent.

# Specifications Implemented

This library builds on the following specifications:

  - HTTP Semantics (RFC 9110): https://www.rfc-editor.org/rfc/rfc9110
  - HTTP/1.1 Message Syntax and Routing (RFC 9112): https://www.rfc-editor.org/rfc/rfc9112
  - Multipart Media Types (RFC 2046 Section 5.1): https://www.rfc-editor.org/rfc/rfc2046
  - GZIP File Format (RFC 1952): https://www.rfc-editor.org/rfc/rfc1952

# Package Structure

The library is organized into the following packages:

	github.com/sirosfoundation/go-httpmulti/pkg/message     - HTTP message structures and wire codec
	github.com/sirosfoundation/go-httpmulti/pkg/mime        - MIME multipart reading and writing
	github.com/sirosfoundation/go-httpmulti/pkg/envelope    - Envelope assembly, parsing, and correlation IDs
	github.com/sirosfoundation/go-httpmulti/pkg/exchange    - Client API for bundled round trips
	github.com/sirosfoundation/go-httpmulti/pkg/gateway     - Server-side envelope unbundling handler
	github.com/sirosfoundation/go-httpmulti/pkg/transport   - HTTPS transport with TLS 1.2/1.3
	github.com/sirosfoundation/go-httpmulti/pkg/compression - GZIP envelope compression

# Quick Start

To exchange a set of requests in one round trip:

	import (
	    "github.com/sirosfoundation/go-httpmulti/pkg/envelope"
	    "github.com/sirosfoundation/go-httpmulti/pkg/exchange"
	    "github.com/sirosfoundation/go-httpmulti/pkg/message"
	)

	// Assemble the request set
	reqs := envelope.RequestSet{
	    exchange.NewID(): message.NewRequest("GET", "/one.html", nil),
	    exchange.NewID(): message.NewRequest("GET", "/two.html", nil),
	}

	// Create client and exchange
	client, _ := exchange.NewClient(&exchange.ClientConfig{})
	resps, err := client.Do(ctx, "https://gateway.example.com/multi", reqs)

To unbundle envelopes in front of an existing handler:

	import "github.com/sirosfoundation/go-httpmulti/pkg/gateway"

	gw := gateway.New(appHandler, gateway.WithMaxParts(64))
	http.Handle("POST /multi", gw)

# Wire Format

Every part of an envelope carries five headers:

  - Content-Type: message/http-request or message/http-response
  - Content-Disposition: inline
  - Content-Transfer-Encoding: binary
  - MIME-Version: 1.0
  - Multipart-Request-ID: the correlation identifier

The part body is the HTTP message in its ordinary HTTP/1.1 wire form,
start line first. Request envelopes travel as POST with Content-Type
multipart/parallel; response envelopes answer with 207 Multi-Status and
the same outer media type.

# Gateway Daemon

The cmd/httpmulti-gateway command runs the gateway as a standalone
reverse proxy: it accepts envelopes on a configurable endpoint, replays
each bundled request against an upstream origin, and bundles the
answers. Configuration is YAML, metrics are Prometheus, logging is
structured slog.

# License

BSD-2-Clause License
*/
package gohttpmulti
