// Package query talks to the external event search endpoint.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"eventgallery/internal/model"
)

var (
	// ErrMalformedResponse means the body was not an object with a data array.
	ErrMalformedResponse = errors.New("malformed query response")
	ErrBlankPrompt       = errors.New("blank prompt")
)

// Fetcher returns the events matching a prompt.
type Fetcher interface {
	Fetch(ctx context.Context, prompt string) ([]model.Event, error)
}

// Response is the body the endpoint answers with.
type Response struct {
	Data *[]model.Event `json:"data"`
}

type Client struct {
	HTTP     *resty.Client
	endpoint string
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	r := resty.New()
	r.SetTimeout(timeout)
	r.SetHeader("Accept", "application/json")

	return &Client{
		HTTP:     r,
		endpoint: endpoint,
	}
}

// Fetch issues GET <endpoint>?prompt=<prompt>.
func (c *Client) Fetch(ctx context.Context, prompt string) ([]model.Event, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrBlankPrompt
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetQueryParam("prompt", prompt).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query endpoint returned %s", resp.Status())
	}

	return Decode(resp.Body())
}

// Decode parses a response body. A missing or null data field is malformed;
// an empty array is a valid empty result.
func Decode(body []byte) ([]model.Event, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if r.Data == nil {
		return nil, fmt.Errorf("%w: missing data field", ErrMalformedResponse)
	}
	return *r.Data, nil
}
