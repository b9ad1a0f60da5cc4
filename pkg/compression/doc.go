// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides GZIP compression for envelope bodies.

Compression applies to the outer envelope body only, signalled with
Content-Encoding: gzip on the outer message. Part bodies inside the
envelope always stay binary; re-encoding them would break the byte-exact
round trip the envelope format guarantees.

# Compression

Compress an envelope body before sending:

	compressor := compression.NewCompressor()
	compressed, err := compressor.Compress(body)

Decompress a received body:

	decompressed, err := compressor.Decompress(compressed)

# Size Threshold

Envelopes below MinSize are not worth deflating:

	if compression.ShouldCompress(len(body)) {
	    // Compress before sending
	}

# References

  - GZIP RFC 1952: https://datatracker.ietf.org/doc/html/rfc1952
  - HTTP Content-Encoding: https://datatracker.ietf.org/doc/html/rfc9110#section-8.4
*/
package compression
