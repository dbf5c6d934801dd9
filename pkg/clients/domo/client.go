package domo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ClientInterface defines the Domo API operations used by the provisioner
type ClientInterface interface {
	// Account operations
	CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error)

	// BYOS integration operations
	CreateIntegration(ctx context.Context, req *CreateIntegrationRequest) (*Integration, error)
	GetWarehouses(ctx context.Context, integrationID string) ([]Warehouse, error)
	AssignWarehouses(ctx context.Context, integrationID string, warehouses []Warehouse) error
}

// Client provides a high-level interface for the Domo provisioning APIs
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Domo client with the given options
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// CreateAccount creates a Cloud Amplifier account. The call is not
// idempotent: calling twice creates two accounts.
func (c *Client) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	resp, err := c.doRequest(ctx, "POST", "/api/data/v1/accounts", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	var account Account
	if err := c.handleResponse(resp, &account); err != nil {
		return nil, fmt.Errorf("failed to process create account response: %w", err)
	}

	return &account, nil
}

// CreateIntegration creates a BYOS integration referencing an existing account
func (c *Client) CreateIntegration(ctx context.Context, req *CreateIntegrationRequest) (*Integration, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	resp, err := c.doRequest(ctx, "POST", "/api/query/v1/byos/accounts", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}

	var integration Integration
	if err := c.handleResponse(resp, &integration); err != nil {
		return nil, fmt.Errorf("failed to process create integration response: %w", err)
	}

	return &integration, nil
}

// GetWarehouses lists the warehouses available to a BYOS integration
func (c *Client) GetWarehouses(ctx context.Context, integrationID string) ([]Warehouse, error) {
	if integrationID == "" {
		return nil, fmt.Errorf("integration ID is required")
	}

	path := fmt.Sprintf("/api/query/v1/byos/warehouses/%s", integrationID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouses: %w", err)
	}

	var warehouses []Warehouse
	if err := c.handleResponse(resp, &warehouses); err != nil {
		return nil, fmt.Errorf("failed to process get warehouses response: %w", err)
	}

	return warehouses, nil
}

// AssignWarehouses assigns warehouses with their activity sets to a BYOS
// integration
func (c *Client) AssignWarehouses(ctx context.Context, integrationID string, warehouses []Warehouse) error {
	if integrationID == "" {
		return fmt.Errorf("integration ID is required")
	}

	if len(warehouses) == 0 {
		return fmt.Errorf("at least one warehouse is required")
	}

	path := fmt.Sprintf("/api/query/v1/byos/warehouses/%s", integrationID)
	resp, err := c.doRequest(ctx, "PUT", path, warehouses)
	if err != nil {
		return fmt.Errorf("failed to assign warehouses: %w", err)
	}

	if err := c.handleResponse(resp, nil); err != nil {
		return fmt.Errorf("failed to process assign warehouses response: %w", err)
	}

	return nil
}

// doRequest performs a single HTTP request. There are no retries: every call
// has exactly one success or failure outcome.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var requestBody io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewBuffer(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	if c.config.RequestID != "" {
		req.Header.Set("X-Request-ID", c.config.RequestID)
	}

	// Domo accepts the developer token header; the Authorization form is set
	// as well for gateways that only inspect the standard header.
	if c.config.Token != "" {
		req.Header.Set("X-Domo-Developer-Token", c.config.Token)
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// handleResponse processes the HTTP response and unmarshals JSON if successful
func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResponse struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}

		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if json.Unmarshal(body, &errorResponse) == nil {
			if errorResponse.Error != "" {
				message = errorResponse.Error
			} else if errorResponse.Message != "" {
				message = errorResponse.Message
			}
		}

		return &Error{
			StatusCode: resp.StatusCode,
			Message:    message,
			Body:       string(body),
			RequestID:  resp.Header.Get("X-Request-ID"),
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
