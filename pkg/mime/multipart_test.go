package mime

import (
	"bytes"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partHeader(contentType, id string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType)
	h.Set("Content-ID", id)
	return h
}

func TestBuildAndParse(t *testing.T) {
	parts := []Part{
		{Header: partHeader("text/plain", "<a>"), Body: []byte("first body")},
		{Header: partHeader("application/octet-stream", "<b>"), Body: []byte{0x00, 0x01, 0xFF}},
	}

	body, contentType, err := Build("parallel", parts)
	require.NoError(t, err)
	assert.Contains(t, contentType, "multipart/parallel")
	assert.Contains(t, contentType, "boundary=")

	parsed, err := NewParser().Parse(bytes.NewReader(body), contentType)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, "text/plain", parsed[0].Header.Get("Content-Type"))
	assert.Equal(t, []byte("first body"), parsed[0].Body)
	assert.Equal(t, "<b>", parsed[1].Header.Get("Content-ID"))
	assert.Equal(t, []byte{0x00, 0x01, 0xFF}, parsed[1].Body)
}

func TestBuildAndParse_EmptyContainer(t *testing.T) {
	body, contentType, err := Build("parallel", nil)
	require.NoError(t, err)

	parsed, err := NewParser().Parse(bytes.NewReader(body), contentType)
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestBuildAndParse_BoundaryLikeBodies(t *testing.T) {
	hostile := []byte("------=_Part_0000\r\nContent-Type: text/plain\r\n\r\nfake part\r\n")
	parts := []Part{
		{Header: partHeader("application/octet-stream", "<x>"), Body: hostile},
	}

	body, contentType, err := Build("parallel", parts)
	require.NoError(t, err)

	parsed, err := NewParser().Parse(bytes.NewReader(body), contentType)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, hostile, parsed[0].Body)
}

func TestBuild_FreshBoundaryPerContainer(t *testing.T) {
	_, ct1, err := Build("parallel", nil)
	require.NoError(t, err)
	_, ct2, err := Build("parallel", nil)
	require.NoError(t, err)

	assert.NotEqual(t, ct1, ct2)
}

func TestParse_InvalidContentType(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader(""), "text/plain")
	assert.ErrorIs(t, err, ErrNotMultipart)
}

func TestParse_MissingBoundary(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader(""), "multipart/parallel")
	assert.ErrorIs(t, err, ErrNoBoundary)
}

func TestParse_UnparseableContentType(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader(""), ";;;")
	assert.Error(t, err)
}

// Raw parts keep their transfer encoding: quoted-printable bodies must come
// back exactly as written, with the header still present.
func TestParse_DoesNotDecodeTransferEncoding(t *testing.T) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	parts := []Part{{Header: h, Body: []byte("A=42B")}}

	body, contentType, err := Build("parallel", parts)
	require.NoError(t, err)

	parsed, err := NewParser().Parse(bytes.NewReader(body), contentType)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, []byte("A=42B"), parsed[0].Body)
	assert.Equal(t, "quoted-printable", parsed[0].Header.Get("Content-Transfer-Encoding"))
}

func TestParser_WithTempDir(t *testing.T) {
	dir := t.TempDir()
	parts := []Part{
		{Header: partHeader("text/plain", "<a>"), Body: []byte(strings.Repeat("spool me ", 1024))},
		{Header: partHeader("text/plain", "<b>"), Body: []byte("small")},
	}

	body, contentType, err := Build("parallel", parts)
	require.NoError(t, err)

	parsed, err := NewParser(WithTempDir(dir)).Parse(bytes.NewReader(body), contentType)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, parts[0].Body, parsed[0].Body)
	assert.Equal(t, parts[1].Body, parsed[1].Body)

	// Staging files are gone once Parse returns.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
