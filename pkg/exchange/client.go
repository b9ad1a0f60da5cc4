// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sirosfoundation/go-httpmulti/pkg/envelope"
	"github.com/sirosfoundation/go-httpmulti/pkg/transport"
)

// ErrUnexpectedStatus reports an outer response status other than 207.
var ErrUnexpectedStatus = errors.New("unexpected envelope response status")

// MissingError reports request IDs the response envelope did not answer.
type MissingError struct {
	IDs []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("no response for request IDs: %s", strings.Join(e.IDs, ", "))
}

// Client performs envelope round trips against a remote endpoint
type Client struct {
	http         *transport.Client
	parser       *envelope.Parser
	allowPartial bool
}

// ClientConfig holds client configuration
type ClientConfig struct {
	// Transport configures the underlying HTTP(S) client. Nil selects
	// transport.DefaultConfig().
	Transport *transport.Config

	// Parser parses response envelopes. Nil selects a default parser with
	// in-memory part buffering.
	Parser *envelope.Parser

	// Compress enables GZIP of outbound envelope bodies above the
	// compression threshold.
	Compress bool

	// AllowPartial accepts response envelopes that answer only a subset of
	// the sent request IDs. When false, Do fails with *MissingError.
	AllowPartial bool
}

// NewClient creates a new envelope exchange client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	var opts []transport.ClientOption
	if config.Compress {
		opts = append(opts, transport.WithCompression())
	}

	parser := config.Parser
	if parser == nil {
		parser = envelope.NewParser(nil)
	}

	return &Client{
		http:         transport.NewClient(config.Transport, opts...),
		parser:       parser,
		allowPartial: config.AllowPartial,
	}, nil
}

// Do sends reqs to endpoint as one envelope and returns the responses keyed
// by request ID. The set may contain IDs the caller never sent; correlation
// is by ID equality only, and surplus responses are passed through.
func (c *Client) Do(ctx context.Context, endpoint string, reqs envelope.RequestSet) (envelope.ResponseSet, error) {
	// 1. Build the request envelope
	env, err := envelope.NewRequest(endpoint, reqs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build envelope: %w", err)
	}

	// 2. Send via HTTP(S)
	resp, err := c.http.Do(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("failed to send envelope: %w", err)
	}

	// 3. Require the 207 Multi-Status outer reply
	if resp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnexpectedStatus, resp.StatusCode, http.StatusMultiStatus)
	}

	// 4. Parse the response envelope
	resps, err := c.parser.ParseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response envelope: %w", err)
	}

	// 5. Verify every request was answered
	if !c.allowPartial {
		if missing := missingIDs(reqs, resps); len(missing) > 0 {
			return nil, &MissingError{IDs: missing}
		}
	}

	return resps, nil
}

// missingIDs returns the request IDs absent from resps, sorted.
func missingIDs(reqs envelope.RequestSet, resps envelope.ResponseSet) []string {
	var missing []string
	for id := range reqs {
		if _, ok := resps[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// NewID returns a fresh correlation ID for keying a RequestSet entry.
func NewID() string {
	return uuid.New().String()
}
