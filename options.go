package mailsieve

import (
	"net/http"
	"time"
)

const (
	defaultBaseURL = "http://localhost:11333"
	defaultTimeout = 30 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL     string
	password    string
	serverKey   string
	timeout     time.Duration
	retries     int
	retriesSet  bool
	compression bool
	httpClient  *http.Client
	proxyURL    string
	tlsCAPath   string
	tlsCertPath string
	tlsKeyPath  string
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the daemon base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithPassword sets the controller password sent with every request. On
// the encrypted path the password travels inside the sealed envelope.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithEncryptionKey sets the daemon's public key (base32) and enables
// the encrypted transport. Every request then performs a fresh X25519
// key agreement and seals the full inner request.
func WithEncryptionKey(key string) Option {
	return func(c *clientConfig) {
		c.serverKey = key
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retry attempts for transient failures.
// Zero disables retries.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
		c.retriesSet = true
	}
}

// WithoutCompression disables zstd compression of message bodies.
func WithoutCompression() Option {
	return func(c *clientConfig) {
		c.compression = false
	}
}

// WithHTTPClient sets a custom HTTP client. Proxy and TLS options are
// ignored when one is provided.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithProxy routes daemon requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(c *clientConfig) {
		c.proxyURL = proxyURL
	}
}

// WithTLSCA adds a PEM CA bundle used to verify the daemon's TLS
// certificate.
func WithTLSCA(path string) Option {
	return func(c *clientConfig) {
		c.tlsCAPath = path
	}
}

// WithTLSClientCert presents a client certificate to the daemon.
func WithTLSClientCert(certPath, keyPath string) Option {
	return func(c *clientConfig) {
		c.tlsCertPath = certPath
		c.tlsKeyPath = keyPath
	}
}
