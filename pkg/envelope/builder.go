// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sirosfoundation/go-httpmulti/pkg/mime"
)

// ErrTargetRequired reports a request envelope built without a target URI.
var ErrTargetRequired = errors.New("request envelope target URI is required")

// NewRequest bundles a set of requests into one outer HTTP request destined
// for target. The outer method is always POST regardless of the bundled
// methods. Extra headers are merged into the outer request; the envelope's
// own Content-Type wins over any extra one. An empty set is legal and
// produces an envelope with a valid, empty multipart body.
func NewRequest(target string, reqs RequestSet, extra http.Header) (*http.Request, error) {
	if target == "" {
		return nil, ErrTargetRequired
	}

	parts := make([]mime.Part, 0, len(reqs))
	for id, sub := range reqs {
		part, err := EncodeRequest(id, sub)
		if err != nil {
			return nil, fmt.Errorf("encoding part %q: %w", id, err)
		}
		parts = append(parts, part)
	}

	body, contentType, err := mime.Build("parallel", parts)
	if err != nil {
		return nil, fmt.Errorf("building multipart container: %w", err)
	}

	env, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building envelope request: %w", err)
	}
	mergeHeader(env.Header, extra)
	env.Header.Set("Content-Type", contentType)
	return env, nil
}

// NewResponse bundles a set of responses into one outer HTTP response. The
// outer status is fixed at 207 Multi-Status over HTTP/1.0. Content-Length
// is set to the exact body length unless extra already carries one.
func NewResponse(resps ResponseSet, extra http.Header) (*http.Response, error) {
	parts := make([]mime.Part, 0, len(resps))
	for id, sub := range resps {
		part, err := EncodeResponse(id, sub)
		if err != nil {
			return nil, fmt.Errorf("encoding part %q: %w", id, err)
		}
		parts = append(parts, part)
	}

	body, contentType, err := mime.Build("parallel", parts)
	if err != nil {
		return nil, fmt.Errorf("building multipart container: %w", err)
	}

	header := make(http.Header)
	mergeHeader(header, extra)
	header.Set("Content-Type", contentType)
	if header.Get("Content-Length") == "" {
		header.Set("Content-Length", strconv.Itoa(len(body)))
	}

	return &http.Response{
		Status:        "207 " + http.StatusText(http.StatusMultiStatus),
		StatusCode:    http.StatusMultiStatus,
		Proto:         "HTTP/1.0",
		ProtoMajor:    1,
		ProtoMinor:    0,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}, nil
}

func mergeHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
