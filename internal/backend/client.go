// Package backend asks the retrieval service for answers over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/docchat/internal/appconfig"
	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/logging"
)

// ErrNoEndpoint is returned when no backend URL is configured.
var ErrNoEndpoint = errors.New("backendURL is not configured")

// Answerer produces a response for a question in the given mode.
type Answerer interface {
	Ask(ctx context.Context, mode display.Mode, question string) (display.Response, error)
}

// Client implements Answerer against an HTTP endpoint that accepts
// {"mode","question"} and returns {"answer","context"}.
type Client struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// New constructs a Client configured with the application's request timeout.
func New(cfg *appconfig.Config) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BackendURL) == "" {
		return nil, ErrNoEndpoint
	}
	timeout := cfg.RequestTimeout()
	return &Client{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimSpace(cfg.BackendURL),
		timeout:  timeout,
	}, nil
}

type askRequest struct {
	Mode     string `json:"mode"`
	Question string `json:"question"`
}

// Ask posts the question and decodes the backend's response.
func (c *Client) Ask(ctx context.Context, mode display.Mode, question string) (display.Response, error) {
	body, err := json.Marshal(askRequest{Mode: mode.Alias(), Question: question})
	if err != nil {
		return display.Response{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logging.LogRequest("DOCCHAT->BACKEND", c.endpoint, mode.Alias(), body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return display.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return display.Response{}, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return display.Response{}, err
	}
	logging.LogRequest("BACKEND->DOCCHAT", c.endpoint, mode.Alias(), respBody)

	if resp.StatusCode >= 400 {
		return display.Response{}, fmt.Errorf("backend returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var out display.Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return display.Response{}, fmt.Errorf("decode backend response: %w", err)
	}
	return out, nil
}

// ReadResponse decodes a response object saved as JSON.
func ReadResponse(r io.Reader) (display.Response, error) {
	var out display.Response
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return display.Response{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
