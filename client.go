package mailsieve

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mailsieve/client-go/internal/api"
)

// Client submits messages to a mailsieve daemon for scanning and Bayes
// training. A Client is safe for concurrent use.
type Client struct {
	apiClient *api.Client
}

// New creates a client. Without options it talks plain HTTP to
// http://localhost:11333 with zstd compression enabled.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:     defaultBaseURL,
		timeout:     defaultTimeout,
		compression: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{apiClient: apiClient}, nil
}

func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithTimeout(cfg.timeout),
		api.WithCompression(cfg.compression),
	}
	if cfg.password != "" {
		apiOpts = append(apiOpts, api.WithPassword(cfg.password))
	}
	if cfg.serverKey != "" {
		apiOpts = append(apiOpts, api.WithServerKey(cfg.serverKey))
	}
	if cfg.retriesSet {
		retry := api.DefaultRetryConfig()
		retry.MaxRetries = cfg.retries
		apiOpts = append(apiOpts, api.WithRetryConfig(retry))
	}
	if cfg.proxyURL != "" {
		apiOpts = append(apiOpts, api.WithProxy(cfg.proxyURL))
	}
	if cfg.tlsCAPath != "" {
		apiOpts = append(apiOpts, api.WithTLSCA(cfg.tlsCAPath))
	}
	if cfg.tlsCertPath != "" {
		apiOpts = append(apiOpts, api.WithTLSClientCert(cfg.tlsCertPath, cfg.tlsKeyPath))
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	return api.New(apiOpts...)
}

// Scan submits a message for scanning and returns the daemon's verdict.
// With ScanFile the message argument is ignored and the daemon reads
// the file from its own disk.
func (c *Client) Scan(ctx context.Context, message []byte, opts ...ScanOption) (*ScanResult, error) {
	resp, err := c.request(ctx, "/checkv2", message, opts)
	if err != nil {
		return nil, err
	}

	body := resp.Body
	var rewritten []byte
	// A Message-Offset header means the daemon appended a rewritten
	// message after the JSON reply.
	if offsetValue, ok := resp.Headers["Message-Offset"]; ok {
		offset, err := strconv.Atoi(offsetValue)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid Message-Offset header %q", offsetValue)
		}
		if offset < len(body) {
			rewritten = body[offset:]
			body = body[:offset]
		}
	}

	result := &ScanResult{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("decode scan reply: %w", err)
	}
	result.RewrittenBody = rewritten
	return result, nil
}

// LearnSpam trains the daemon's Bayes classifier with a spam message.
func (c *Client) LearnSpam(ctx context.Context, message []byte, opts ...ScanOption) (*LearnResult, error) {
	return c.learn(ctx, "/learnspam", message, opts)
}

// LearnHam trains the daemon's Bayes classifier with a ham message.
func (c *Client) LearnHam(ctx context.Context, message []byte, opts ...ScanOption) (*LearnResult, error) {
	return c.learn(ctx, "/learnham", message, opts)
}

func (c *Client) learn(ctx context.Context, path string, message []byte, opts []ScanOption) (*LearnResult, error) {
	resp, err := c.request(ctx, path, message, opts)
	if err != nil {
		return nil, err
	}
	result := &LearnResult{}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return nil, fmt.Errorf("decode learn reply: %w", err)
	}
	return result, nil
}

func (c *Client) request(ctx context.Context, path string, message []byte, opts []ScanOption) (*api.Response, error) {
	cfg := &scanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return c.apiClient.Do(ctx, &api.Request{
		Path:    path,
		Headers: cfg.headers,
		Body:    message,
	})
}
