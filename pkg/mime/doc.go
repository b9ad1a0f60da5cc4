// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mime assembles and splits MIME multipart containers.

This package is the low-level carrier for multipart envelopes: it turns a
sequence of parts into one container body with a freshly generated
boundary, and splits a container back into its parts. A part is a raw
section, header map plus exact body octets, with no transfer decoding in
either direction.

# Container Structure

A built container looks like:

	Content-Type: multipart/parallel;
	    boundary="----=_Part_..."

	------=_Part_...
	Content-Type: message/http-request
	Content-Transfer-Encoding: binary

	[exact message octets]

	------=_Part_...
	Content-Type: message/http-request
	Content-Transfer-Encoding: binary

	[exact message octets]

# Building

	parts := []mime.Part{{Header: hdr, Body: data}}
	body, contentType, err := mime.Build("parallel", parts)

Build generates a unique boundary for every container, so bodies that
happen to contain boundary-like byte sequences never collide with the real
delimiter.

# Parsing

	parser := mime.NewParser()
	parts, err := parser.Parse(bytes.NewReader(body), contentType)

A Parser buffers part bodies in memory. For containers too large to hold
comfortably, WithTempDir stages each body through a file while the
container is scanned:

	parser := mime.NewParser(mime.WithTempDir("/var/spool/httpmulti"))

# References

  - MIME Format of Message Bodies: https://datatracker.ietf.org/doc/html/rfc2045
  - MIME Media Types: https://datatracker.ietf.org/doc/html/rfc2046
*/
package mime
