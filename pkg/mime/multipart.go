// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package mime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Parse errors.
var (
	ErrNotMultipart = errors.New("not a multipart message")
	ErrNoBoundary   = errors.New("boundary not found in content type")
)

// Part is one raw MIME section: its header fields and its exact body
// octets. Bodies are binary; no transfer decoding is applied in either
// direction.
type Part struct {
	Header textproto.MIMEHeader
	Body   []byte
}

// Build assembles parts into a multipart container of the given subtype,
// for example "parallel" or "related". It returns the container body and
// the complete Content-Type value carrying a freshly generated boundary.
// Zero parts is legal and produces a valid empty container.
func Build(subtype string, parts []Part) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	boundary := generateBoundary()
	if err := writer.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("failed to set boundary: %w", err)
	}

	for i, part := range parts {
		w, err := writer.CreatePart(part.Header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %d: %w", i, err)
		}
		if _, err := w.Write(part.Body); err != nil {
			return nil, "", fmt.Errorf("failed to write part %d: %w", i, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	contentType := mime.FormatMediaType("multipart/"+subtype, map[string]string{
		"boundary": boundary,
	})
	return buf.Bytes(), contentType, nil
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithTempDir stages part bodies through files under dir while a container
// is being scanned, bounding memory use during the scan. The staging files
// are removed before Parse returns. An empty dir means the operating
// system's default temporary directory.
func WithTempDir(dir string) ParserOption {
	return func(p *Parser) {
		p.tempDir = dir
		p.useTempFiles = true
	}
}

// Parser splits multipart containers into their raw parts. The zero value
// buffers part bodies in memory. A Parser is safe for concurrent use.
type Parser struct {
	tempDir      string
	useTempFiles bool
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse splits a multipart container into its parts, in document order.
// contentType must be a multipart media type with a boundary parameter.
// Part bodies are read raw: transfer encodings are not decoded.
func (p *Parser) Parse(r io.Reader, contentType string) ([]Part, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content type: %w", err)
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("%w: %s", ErrNotMultipart, mediaType)
	}

	boundary := params["boundary"]
	if boundary == "" {
		return nil, ErrNoBoundary
	}

	reader := multipart.NewReader(r, boundary)
	var parts []Part
	for {
		part, err := reader.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read part: %w", err)
		}

		body, err := p.readBody(part)
		if err != nil {
			return nil, fmt.Errorf("failed to read part data: %w", err)
		}

		parts = append(parts, Part{Header: part.Header, Body: body})
	}

	return parts, nil
}

// readBody drains one part, either straight into memory or through a
// staging file.
func (p *Parser) readBody(part *multipart.Part) ([]byte, error) {
	if !p.useTempFiles {
		return io.ReadAll(part)
	}

	f, err := os.CreateTemp(p.tempDir, "multipart-")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err := io.Copy(f, part); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

// generateBoundary generates a MIME boundary string
func generateBoundary() string {
	return fmt.Sprintf("----=_Part_%s", strings.ReplaceAll(uuid.New().String(), "-", ""))
}
