// Package api implements the HTTP transport to the Mailsieve daemon,
// including the encrypted request path built on the httpcrypt envelope
// protocol.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mailsieve/client-go/internal/httpcrypt"
)

const defaultBaseURL = "http://localhost:11333"

// Client is the HTTP transport client for the daemon.
type Client struct {
	baseURL    string
	password   string
	serverKey  string // daemon public key in protocol base32; empty disables encryption
	zstd       bool
	timeout    time.Duration
	proxyURL   string
	tlsCAPath  string
	tlsCert    string
	tlsKey     string
	httpClient *http.Client
	retry      *RetryConfig
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the daemon base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithPassword sets the controller password sent with every request.
func WithPassword(password string) Option {
	return func(c *Client) {
		c.password = password
	}
}

// WithServerKey enables encrypted transport against the given daemon
// public key (protocol base32 format).
func WithServerKey(key string) Option {
	return func(c *Client) {
		c.serverKey = key
	}
}

// WithCompression toggles zstd compression of request bodies.
func WithCompression(enabled bool) Option {
	return func(c *Client) {
		c.zstd = enabled
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig sets the retry policy.
func WithRetryConfig(retry *RetryConfig) Option {
	return func(c *Client) {
		c.retry = retry
	}
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithTLSCA adds a root CA certificate from a PEM file.
func WithTLSCA(path string) Option {
	return func(c *Client) {
		c.tlsCAPath = path
	}
}

// WithTLSClientCert sets a client certificate and key from PEM files.
func WithTLSClientCert(certPath, keyPath string) Option {
	return func(c *Client) {
		c.tlsCert = certPath
		c.tlsKey = keyPath
	}
}

// WithHTTPClient sets a custom HTTP client, overriding the timeout,
// proxy, and TLS options.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a transport client.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: defaultBaseURL,
		zstd:    true,
		timeout: 30 * time.Second,
		retry:   DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		client, err := c.buildHTTPClient()
		if err != nil {
			return nil, err
		}
		c.httpClient = client
	}
	return c, nil
}

func (c *Client) buildHTTPClient() (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if c.proxyURL != "" {
		proxy, err := url.Parse(c.proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	if c.tlsCAPath != "" || c.tlsCert != "" {
		tlsConfig := &tls.Config{}
		if c.tlsCAPath != "" {
			pem, err := os.ReadFile(c.tlsCAPath)
			if err != nil {
				return nil, fmt.Errorf("read CA file: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("no certificates found in %s", c.tlsCAPath)
			}
			tlsConfig.RootCAs = pool
		}
		if c.tlsCert != "" {
			cert, err := tls.LoadX509KeyPair(c.tlsCert, c.tlsKey)
			if err != nil {
				return nil, fmt.Errorf("load client certificate: %w", err)
			}
			tlsConfig.Certificates = []tls.Certificate{cert}
		}
		transport.TLSClientConfig = tlsConfig
	}

	return &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}, nil
}

// Request describes a single daemon operation. Headers are envelope
// metadata in caller order; the order is preserved on the wire because it
// is authenticated on the encrypted path.
type Request struct {
	Path    string
	Headers []httpcrypt.Header
	Body    []byte
}

// Response is the daemon reply after any decryption and decompression.
// On the encrypted path StatusCode and Headers come from the inner
// message, not the outer HTTP exchange.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Do performs a daemon operation, retrying transport-level failures per
// the retry policy. Each encrypted attempt runs a complete fresh key
// agreement: nonces and keys from a failed attempt are never replayed.
// Decryption and framing failures are terminal and never retried.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body := req.Body
	// A File header tells the daemon to read the message from its local
	// disk, so no body is transmitted.
	needBody := len(body) > 0 && !hasHeader(req.Headers, "File")
	if needBody && c.zstd {
		body = compress(body)
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.attempt(ctx, req, body, needBody)
		if err == nil {
			return resp, nil
		}
		if !c.shouldRetry(err, attempt) {
			return nil, err
		}
		if waitErr := c.retry.Wait(ctx, attempt); waitErr != nil {
			return nil, waitErr
		}
	}
}

func (c *Client) shouldRetry(err error, attempt int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return c.retry.ShouldRetry(attempt, apiErr.StatusCode)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return attempt < c.retry.MaxRetries
	}
	return false
}

func (c *Client) attempt(ctx context.Context, req *Request, body []byte, needBody bool) (*Response, error) {
	if c.serverKey != "" {
		return c.attemptEncrypted(ctx, req, body, needBody)
	}
	return c.attemptPlain(ctx, req, body, needBody)
}

func (c *Client) attemptPlain(ctx context.Context, req *Request, body []byte, needBody bool) (*Response, error) {
	method := http.MethodPost
	var bodyReader io.Reader
	if needBody {
		bodyReader = bytes.NewReader(body)
	} else {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.password != "" {
		httpReq.Header.Set("Password", c.password)
	}
	if c.zstd && needBody {
		httpReq.Header.Set("Content-Encoding", "zstd")
		httpReq.Header.Set("Compression", "zstd")
	}
	for _, h := range req.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.baseURL + req.Path}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.baseURL + req.Path}
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[http.CanonicalHeaderKey(name)] = resp.Header.Get(name)
	}
	if headers["Compression"] == "zstd" {
		raw, err = decompress(raw)
		if err != nil {
			return nil, fmt.Errorf("decompress response: %w", err)
		}
	}
	return &Response{StatusCode: resp.StatusCode, Headers: headers, Body: raw}, nil
}

func (c *Client) attemptEncrypted(ctx context.Context, req *Request, body []byte, needBody bool) (*Response, error) {
	kp, err := httpcrypt.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	defer kp.Zero()

	innerMethod := http.MethodPost
	if !needBody {
		innerMethod = http.MethodGet
	}
	inner := make([]httpcrypt.Header, 0, len(req.Headers)+3)
	if c.password != "" {
		inner = append(inner, httpcrypt.Header{Name: "Password", Value: c.password})
	}
	if c.zstd && needBody {
		inner = append(inner,
			httpcrypt.Header{Name: "Content-Encoding", Value: "zstd"},
			httpcrypt.Header{Name: "Compression", Value: "zstd"})
	}
	inner = append(inner, req.Headers...)
	plaintext := httpcrypt.BuildRequest(innerMethod, req.Path, inner, body)

	key, err := httpcrypt.DeriveSharedKey(kp, c.serverKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	envelope, err := httpcrypt.Seal(plaintext, key)
	if err != nil {
		return nil, err
	}
	keyHeader, err := httpcrypt.BuildKeyHeader(c.serverKey, kp.PublicBase32())
	if err != nil {
		return nil, err
	}

	// The outer request carries only the envelope and the Key header;
	// everything else travels inside the sealed message.
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+req.Path, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Key", keyHeader)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.baseURL + req.Path}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: c.baseURL + req.Path}
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	decrypted, err := httpcrypt.Open(raw, key)
	if err != nil {
		return nil, err
	}
	parsed, err := httpcrypt.ParseResponse(decrypted)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(parsed.Headers))
	for _, h := range parsed.Headers {
		headers[http.CanonicalHeaderKey(h.Name)] = h.Value
	}
	innerBody := decrypted[parsed.BodyOffset:]
	if headers["Compression"] == "zstd" {
		innerBody, err = decompress(innerBody)
		if err != nil {
			return nil, fmt.Errorf("decompress response: %w", err)
		}
	}
	if parsed.Code >= 400 {
		return nil, &Error{StatusCode: parsed.Code, Message: strings.TrimSpace(string(innerBody))}
	}
	return &Response{StatusCode: parsed.Code, Headers: headers, Body: innerBody}, nil
}

func hasHeader(headers []httpcrypt.Header, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}
