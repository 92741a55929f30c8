package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends templated transactional mail through the delivery provider's
// HTTP API. It is a thin boundary: one call, one message, no retries.
type Client struct {
	endpoint   string
	apiKey     string
	sender     string
	httpClient HTTPClient
}

func NewClient(endpoint, apiKey, sender string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		sender:     sender,
		httpClient: &http.Client{},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

type sendRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Template string `json:"template"`
	Data     any    `json:"data"`
}

func (c *Client) Send(ctx context.Context, template string, recipient string, payload any) error {

	body, err := json.Marshal(sendRequest{
		From:     c.sender,
		To:       recipient,
		Template: template,
		Data:     payload,
	})
	if err != nil {
		return fmt.Errorf("error encoding message: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delivery failed with status %v, body: %v", resp.StatusCode, string(respBody))
	}

	return nil
}
