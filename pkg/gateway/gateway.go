// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sirosfoundation/go-httpmulti/pkg/compression"
	"github.com/sirosfoundation/go-httpmulti/pkg/envelope"
	"github.com/sirosfoundation/go-httpmulti/pkg/message"
)

// Gateway fans a request envelope out over an inner handler and bundles the
// answers into a 207 response envelope. It implements http.Handler.
type Gateway struct {
	next         http.Handler
	parser       *envelope.Parser
	logger       *slog.Logger
	compressor   *compression.Compressor
	maxParts     int
	maxBodyBytes int64
}

// Option configures a Gateway
type Option func(*Gateway)

// WithParser sets the envelope parser. The default parser buffers parts in
// memory.
func WithParser(p *envelope.Parser) Option {
	return func(g *Gateway) {
		g.parser = p
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithMaxParts caps the number of parts accepted per envelope. Zero means
// no cap.
func WithMaxParts(n int) Option {
	return func(g *Gateway) {
		g.maxParts = n
	}
}

// WithMaxBodyBytes caps the envelope body size in bytes, before and after
// decompression. Zero means no cap.
func WithMaxBodyBytes(n int64) Option {
	return func(g *Gateway) {
		g.maxBodyBytes = n
	}
}

// New creates a Gateway dispatching sub-requests to next. The caller keeps
// ownership of next; a reverse proxy, a mux, or another middleware chain
// all work.
func New(next http.Handler, opts ...Option) *Gateway {
	g := &Gateway{
		next:       next,
		parser:     envelope.NewParser(nil),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		compressor: compression.NewCompressor(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ServeHTTP handles one envelope: read, parse, dispatch each sub-request
// sequentially, reply 207. Sub-request failures become error sub-responses;
// only envelope-level problems fail the outer exchange.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		g.reject(w, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	// 1. Read the envelope body
	body, err := g.readBody(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			g.reject(w, http.StatusRequestEntityTooLarge, "envelope too large", err)
			return
		}
		g.reject(w, http.StatusBadRequest, "cannot read envelope body", err)
		return
	}

	// 2. Parse it into the request set
	r.Body = io.NopCloser(bytes.NewReader(body))
	reqs, err := g.parser.ParseRequest(r)
	if err != nil {
		if errors.Is(err, envelope.ErrNotParallel) {
			g.reject(w, http.StatusUnsupportedMediaType, "unsupported media type", err)
			return
		}
		g.reject(w, http.StatusBadRequest, "malformed envelope", err)
		return
	}

	if g.maxParts > 0 && len(reqs) > g.maxParts {
		g.reject(w, http.StatusRequestEntityTooLarge, "too many parts", fmt.Errorf("%d parts, limit %d", len(reqs), g.maxParts))
		return
	}

	// 3. Replay each sub-request against the inner handler
	resps := make(envelope.ResponseSet, len(reqs))
	for id, sub := range reqs {
		resps[id] = g.dispatch(r, sub)
		g.logger.Debug("dispatched sub-request",
			"id", id,
			"method", sub.Method,
			"target", sub.Target,
			"status", resps[id].StatusCode)
	}

	// 4. Bundle the answers
	env, err := envelope.NewResponse(resps, nil)
	if err != nil {
		g.reject(w, http.StatusInternalServerError, "cannot build response envelope", err)
		return
	}

	w.Header().Set("Content-Type", env.Header.Get("Content-Type"))
	w.Header().Set("Content-Length", strconv.FormatInt(env.ContentLength, 10))
	w.WriteHeader(http.StatusMultiStatus)
	io.Copy(w, env.Body)

	g.logger.Info("handled envelope", "parts", len(reqs))
}

// readBody drains the outer request body, enforcing the size cap and
// undoing GZIP content encoding.
func (g *Gateway) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	reader := r.Body
	if g.maxBodyBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, g.maxBodyBytes)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if r.Header.Get("Content-Encoding") == compression.ContentEncodingGzip {
		body, err = g.compressor.Decompress(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress envelope: %w", err)
		}
		// The cap applies to what gets parsed, so recheck after inflation.
		if g.maxBodyBytes > 0 && int64(len(body)) > g.maxBodyBytes {
			return nil, &http.MaxBytesError{Limit: g.maxBodyBytes}
		}
		r.Header.Del("Content-Encoding")
	}

	return body, nil
}

// dispatch replays one bundled request against the inner handler and
// captures its answer. Dispatch failures yield an error sub-response rather
// than failing the envelope.
func (g *Gateway) dispatch(outer *http.Request, sub *message.Request) *message.Response {
	req, err := http.NewRequestWithContext(outer.Context(), sub.Method, sub.Target, bytes.NewReader(sub.Body))
	if err != nil {
		g.logger.Warn("cannot build sub-request", "method", sub.Method, "target", sub.Target, "error", err)
		return errorResponse(http.StatusBadRequest, fmt.Sprintf("cannot build sub-request: %v", err))
	}

	if sub.Header != nil {
		req.Header = sub.Header.Clone()
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
		req.Header.Del("Host")
	}

	cw := newCaptureWriter()
	g.next.ServeHTTP(cw, req)

	return cw.response()
}

// errorResponse builds the sub-response for a sub-request the gateway could
// not execute.
func errorResponse(status int, detail string) *message.Response {
	resp := message.NewResponse(status, []byte(detail+"\n"))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// reject fails the outer exchange before any envelope is produced.
func (g *Gateway) reject(w http.ResponseWriter, status int, msg string, err error) {
	g.logger.Warn("rejecting envelope", "status", status, "reason", msg, "error", err)
	http.Error(w, msg, status)
}
