package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Client talks to the remote commerce API. Every interesting rule —
// authentication, persistence, validation — lives on the server side; the
// client only attaches the bearer token and normalizes failures. There is no
// retry: every failure is terminal for the user action that triggered it.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// do issues one request. A token of "" means unauthenticated. Non-2xx
// responses become *HTTPError with the body retained; transport failures
// become *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body any, token string) (json.RawMessage, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", url).Msg("API request failed")
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().
			Str("method", method).
			Str("url", url).
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("API returned error response")
		return nil, &HTTPError{Status: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func decode(raw json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding API response: %w", err)
	}
	return nil
}
