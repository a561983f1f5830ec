package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/flicknest/flicknest/config"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means the caller is anonymous.
type TokenSource interface {
	Token() string
}

// Client represents a movie backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new movie backend API client. tokens may be nil for a
// client that only performs unauthenticated calls.
func New(cfg *config.APIConfig, tokens TokenSource) *Client {
	return &Client{
		baseURL: cfg.URL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// token returns the current bearer token, or "" when anonymous.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// errorBody is the error envelope the backend uses for failed requests.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest performs an HTTP request and classifies failures. The caller
// owns the response body on success.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request failed", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		bodyBytes, _ := io.ReadAll(resp.Body)

		msg := string(bodyBytes)
		var eb errorBody
		if err := json.Unmarshal(bodyBytes, &eb); err == nil {
			if eb.Error != "" {
				msg = eb.Error
			} else if eb.Message != "" {
				msg = eb.Message
			}
		}
		return nil, &Error{Kind: kindForStatus(resp.StatusCode), StatusCode: resp.StatusCode, Message: msg}
	}

	return resp, nil
}

// doJSON performs a request with an optional JSON body and decodes the
// JSON response into out (skipped when out is nil).
func (c *Client) doJSON(ctx context.Context, method, endpoint string, query url.Values, reqBody, out any) error {
	var body io.Reader
	contentType := ""
	if reqBody != nil {
		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}

	resp, err := c.doRequest(ctx, method, endpoint, query, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Message: "failed to decode response", Err: err}
	}
	return nil
}
