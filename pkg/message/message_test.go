package message

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("GET", "http://example.com/1.html", nil)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "http://example.com/1.html", req.Target)
	assert.Equal(t, ProtoHTTP11, req.Proto)
	assert.NotNil(t, req.Header)
	assert.Nil(t, req.Body)
}

func TestNewRequest_EmptyBodyNormalized(t *testing.T) {
	req := NewRequest("POST", "/upload.cgi", []byte{})
	assert.Nil(t, req.Body)
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse(http.StatusOK, []byte("<html/>"))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.Reason)
	assert.Equal(t, ProtoHTTP11, resp.Proto)
	assert.NotNil(t, resp.Header)
	assert.Equal(t, []byte("<html/>"), resp.Body)
}

func TestNewResponse_UnknownStatusCode(t *testing.T) {
	resp := NewResponse(599, nil)
	assert.Empty(t, resp.Reason)
}
