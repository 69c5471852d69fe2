package capi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pixelport/pixelport/pkg/configuration"
)

// Response is the raw ads-API reply; outcome interpretation happens in the
// pipeline, not here.
type Response struct {
	StatusCode int
	Body       []byte
}

type DispatchRequest struct {
	PixelID      string
	EventName    string
	EventID      string
	EventTime    int64
	ActionSource string
	CustomData   map[string]interface{}
}

// Dispatcher sends one conversion event to the ads platform.
type Dispatcher interface {
	Dispatch(ctx context.Context, req DispatchRequest, credential string) (*Response, error)
}

type Client struct {
	baseURL    string
	version    string
	testEvents bool
	httpClient *http.Client
}

func NewClient(opts configuration.AdsAPIOptions) *Client {
	return &Client{
		baseURL:    opts.BaseURL,
		version:    opts.Version,
		testEvents: opts.TestEvents,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

type eventEnvelope struct {
	EventName    string                 `json:"event_name"`
	EventTime    int64                  `json:"event_time"`
	EventID      string                 `json:"event_id"`
	ActionSource string                 `json:"action_source"`
	CustomData   map[string]interface{} `json:"custom_data,omitempty"`
}

type dispatchBody struct {
	Data          []eventEnvelope `json:"data"`
	AccessToken   string          `json:"access_token"`
	TestEventCode string          `json:"test_event_code,omitempty"`
}

func (c *Client) Dispatch(ctx context.Context, req DispatchRequest, credential string) (*Response, error) {
	actionSource := req.ActionSource
	if actionSource == "" {
		actionSource = "website"
	}
	body := dispatchBody{
		Data: []eventEnvelope{{
			EventName:    req.EventName,
			EventTime:    req.EventTime,
			EventID:      req.EventID,
			ActionSource: actionSource,
			CustomData:   req.CustomData,
		}},
		AccessToken: credential,
	}
	if c.testEvents {
		body.TestEventCode = "TEST"
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal dispatch payload")
	}

	url := fmt.Sprintf("%s/%s/%s/events", c.baseURL, c.version, req.PixelID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build dispatch request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "dispatch conversion event")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read dispatch response")
	}
	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
