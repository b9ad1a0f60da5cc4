// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package exchange performs client-side envelope round trips.

The package ties together envelope building, HTTP(S) transport, and response
correlation: the caller hands over a set of HTTP messages keyed by
correlation ID and gets back the matching responses keyed the same way.

# Usage

	client, err := exchange.NewClient(&exchange.ClientConfig{})
	if err != nil {
	    return err
	}

	reqs := envelope.RequestSet{
	    exchange.NewID(): message.NewRequest("GET", "/stats.html", nil),
	    exchange.NewID(): message.NewRequest("GET", "/index.html", nil),
	}

	resps, err := client.Do(ctx, "https://gateway.example.com/multi", reqs)
	if err != nil {
	    return err
	}

	for id, resp := range resps {
	    fmt.Println(id, resp.StatusCode)
	}

# Correlation

Responses correlate to requests purely by Multipart-Request-ID equality.
By default Do fails with *MissingError when any sent ID goes unanswered;
set AllowPartial to accept subsets. IDs the caller never sent are passed
through untouched.

# Failure Model

One round trip, no retries, no queueing. An outer status other than
207 Multi-Status fails the call with ErrUnexpectedStatus before any part
parsing happens.
*/
package exchange
