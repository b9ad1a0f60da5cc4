// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package gateway

import (
	"bytes"
	"net/http"

	"github.com/sirosfoundation/go-httpmulti/pkg/message"
)

// captureWriter buffers one sub-request's response instead of writing it to
// the network. The buffered status, headers, and body become a sub-response
// part in the outgoing envelope.
type captureWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

var _ http.ResponseWriter = &captureWriter{}

func newCaptureWriter() *captureWriter {
	return &captureWriter{
		header: make(http.Header),
	}
}

func (w *captureWriter) Header() http.Header {
	return w.header
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// WriteHeader records the status code. Later calls are ignored, matching the
// real ResponseWriter contract.
func (w *captureWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

// response converts the captured state into a sub-response message. A
// handler that never wrote anything yields an empty 200, the same way the
// stdlib server treats a silent handler.
func (w *captureWriter) response() *message.Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	resp := message.NewResponse(status, w.body.Bytes())
	for k, vals := range w.header {
		for _, v := range vals {
			resp.Header.Add(k, v)
		}
	}

	return resp
}
