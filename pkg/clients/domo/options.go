package domo

import (
	"net/http"
	"time"
)

// ClientConfig holds configuration for the Domo client
type ClientConfig struct {
	BaseURL        string
	Token          string // Domo developer access token
	RequestID      string // Stamped on every request as X-Request-ID
	UserAgent      string
	Timeout        time.Duration
	DefaultHeaders map[string]string
	HTTPClient     *http.Client
}

// ClientOption is a function that configures the client
type ClientOption func(*ClientConfig)

// DefaultConfig returns the default client configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:   30 * time.Second,
		UserAgent: "byos-provisioner",
		DefaultHeaders: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// WithBaseURL sets the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithInstance sets the base URL from a Domo instance host, e.g. "mycompany.domo.com"
func WithInstance(instance string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = "https://" + instance
	}
}

// WithToken sets the developer access token sent with every request
func WithToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.Token = token
	}
}

// WithRequestID sets the request ID header value for this client
func WithRequestID(requestID string) ClientOption {
	return func(c *ClientConfig) {
		c.RequestID = requestID
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithUserAgent sets the user agent
func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}

// WithHeader adds a default header to all requests
func WithHeader(key, value string) ClientOption {
	return func(c *ClientConfig) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[key] = value
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = client
	}
}
