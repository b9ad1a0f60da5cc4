// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gateway implements the server-side fan-out for request envelopes.

A Gateway accepts a POST envelope, replays each bundled request against an
inner http.Handler, and bundles the captured answers into a 207 Multi-Status
response envelope. The inner handler can be anything: a reverse proxy to an
upstream origin, a local mux, or a middleware chain.

# Usage

	upstream, _ := url.Parse("http://origin.internal:8080")
	gw := gateway.New(httputil.NewSingleHostReverseProxy(upstream),
	    gateway.WithMaxParts(64),
	    gateway.WithMaxBodyBytes(16<<20),
	)

	http.Handle("POST /multi", gw)

# Dispatch Semantics

Sub-requests run sequentially, one at a time, in no documented order. A
sub-request the gateway cannot rebuild becomes an error sub-response under
the same correlation ID; the envelope exchange itself still replies 207.
Only envelope-level problems fail the outer exchange:

  - 405 for anything but POST
  - 415 when the outer content type is not multipart/parallel
  - 400 for a malformed envelope body or part
  - 413 when a size or part-count cap is exceeded

# Compression

Envelopes sent with Content-Encoding: gzip are decompressed before parsing.
Size caps apply to the decompressed body.
*/
package gateway
