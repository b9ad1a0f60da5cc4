// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirosfoundation/go-httpmulti/pkg/compression"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// Recommended TLS 1.2 cipher suites for envelope exchange
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// Config contains HTTP(S) client/server configuration
type Config struct {
	MinTLSVersion   uint16
	MaxTLSVersion   uint16
	CipherSuites    []uint16
	ClientAuth      tls.ClientAuthType
	Certificates    []tls.Certificate
	RootCAs         *x509.CertPool
	ClientCAs       *x509.CertPool
	Timeout         time.Duration
	IdleConnTimeout time.Duration
}

// DefaultConfig returns a default transport configuration
func DefaultConfig() *Config {
	return &Config{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		CipherSuites:    RecommendedTLS12CipherSuites,
		ClientAuth:      tls.NoClientCert,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
	}
}

// Client sends envelope requests over HTTP(S)
type Client struct {
	client     *http.Client
	config     *Config
	compress   bool
	compressor *compression.Compressor
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithCompression enables GZIP compression of outbound envelope bodies.
// Bodies below compression.MinSize are sent uncompressed.
func WithCompression() ClientOption {
	return func(c *Client) {
		c.compress = true
	}
}

// NewClient creates a new envelope client
func NewClient(config *Config, opts ...ClientOption) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	tlsConfig := &tls.Config{
		MinVersion:   config.MinTLSVersion,
		MaxVersion:   config.MaxTLSVersion,
		CipherSuites: config.CipherSuites,
		Certificates: config.Certificates,
		RootCAs:      config.RootCAs,
	}

	transport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	c := &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config:     config,
		compressor: compression.NewCompressor(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do sends one envelope request and returns the response with its body fully
// buffered. The outer status code is not interpreted here; callers decide
// which codes they accept. No retries are attempted.
func (c *Client) Do(ctx context.Context, env *http.Request) (*http.Response, error) {
	env = env.WithContext(ctx)
	env.Header.Set("User-Agent", "go-httpmulti/1.0")

	if c.compress && env.Body != nil {
		if err := c.compressBody(env); err != nil {
			return nil, fmt.Errorf("failed to compress envelope: %w", err)
		}
	}

	resp, err := c.client.Do(env)
	if err != nil {
		return nil, fmt.Errorf("failed to send envelope: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.Header.Get("Content-Encoding") == compression.ContentEncodingGzip {
		body, err = c.compressor.Decompress(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress response: %w", err)
		}
		resp.Header.Del("Content-Encoding")
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))

	return resp, nil
}

// compressBody swaps the request body for its GZIP form when the body meets
// the size threshold.
func (c *Client) compressBody(env *http.Request) error {
	body, err := io.ReadAll(env.Body)
	env.Body.Close()
	if err != nil {
		return err
	}

	if !compression.ShouldCompress(len(body)) {
		env.Body = io.NopCloser(bytes.NewReader(body))
		env.ContentLength = int64(len(body))
		return nil
	}

	compressed, err := c.compressor.Compress(body)
	if err != nil {
		return err
	}

	env.Body = io.NopCloser(bytes.NewReader(compressed))
	env.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(compressed)), nil
	}
	env.ContentLength = int64(len(compressed))
	env.Header.Set("Content-Encoding", compression.ContentEncodingGzip)

	return nil
}

// Server receives envelope requests over HTTP(S)
type Server struct {
	server *http.Server
	config *Config
}

// NewServer creates a new envelope server with h mounted at the root.
// Protocol handling (method checks, parsing, fan-out) belongs to h.
func NewServer(addr string, config *Config, h http.Handler) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	tlsConfig := &tls.Config{
		MinVersion:   config.MinTLSVersion,
		MaxVersion:   config.MaxTLSVersion,
		CipherSuites: config.CipherSuites,
		Certificates: config.Certificates,
		ClientCAs:    config.ClientCAs,
		ClientAuth:   config.ClientAuth,
	}

	return &Server{
		config: config,
		server: &http.Server{
			Addr:         addr,
			Handler:      h,
			TLSConfig:    tlsConfig,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  config.IdleConnTimeout,
		},
	}
}

// Start starts the server over plain HTTP
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// StartTLS starts the server over HTTPS
func (s *Server) StartTLS() error {
	if len(s.config.Certificates) == 0 {
		return fmt.Errorf("no TLS certificates configured")
	}

	return s.server.ListenAndServeTLS("", "")
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
