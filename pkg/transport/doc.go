// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the HTTP(S) transport layer for envelope
exchange.

This package moves envelopes between peers; it never looks inside them.
Building and parsing envelope bodies belongs to package envelope, and
interpreting outer status codes belongs to the caller.

# TLS Configuration

The package recommends TLS 1.3 with fallback to TLS 1.2:

	config := transport.DefaultConfig()
	// MinTLSVersion: TLS 1.2
	// MaxTLSVersion: TLS 1.3

For TLS 1.2, the following cipher suites are recommended:
  - TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256
  - TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256

# Client Usage

Create a client and send an envelope built by package envelope:

	client := transport.NewClient(&transport.Config{
	    MinTLSVersion: transport.TLS12,
	    RootCAs:       certPool,
	})

	resp, err := client.Do(ctx, env)

The response body is fully buffered before Do returns, so resp.Body can be
consumed without worrying about the connection.

# Compression

WithCompression enables GZIP of outbound envelope bodies:

	client := transport.NewClient(nil, transport.WithCompression())

Bodies at or above compression.MinSize are sent with
Content-Encoding: gzip; smaller bodies go out as-is. Responses carrying
Content-Encoding: gzip are decompressed transparently.

# Server Usage

Create a server around any http.Handler, typically a gateway.Gateway:

	server := transport.NewServer(":8443", &transport.Config{
	    Certificates: []tls.Certificate{cert},
	    ClientAuth:   tls.RequireAndVerifyClientCert,
	    ClientCAs:    clientCAPool,
	}, handler)

	err := server.StartTLS()

Start serves plain HTTP for deployments that terminate TLS elsewhere.

# References

  - TLS 1.3 RFC 8446: https://datatracker.ietf.org/doc/html/rfc8446
  - TLS 1.2 RFC 5246: https://datatracker.ietf.org/doc/html/rfc5246
*/
package transport
