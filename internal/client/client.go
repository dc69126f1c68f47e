// Package client talks to a running demo server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/temirov/supacode-demo/internal/server"
)

const (
	bodyPreviewLimit          = 512
	contentTypeJSON           = "application/json"
	encodeRequestErrorFormat  = "encode request: %w"
	buildRequestErrorFormat   = "build request %s %s: %w"
	httpRequestErrorFormat    = "%s %s: %w"
	readResponseErrorFormat   = "read response: %w"
	statusErrorFormat         = "demo server http error %d: %s"
	decodeResponseErrorFormat = "decode response: %w (body=%s)"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) Client {
	return Client{BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), HTTPClient: &http.Client{}}
}

// Submit triggers an operation on the server and waits for the simulated result.
func (c Client) Submit(ctx context.Context, operation string, sourceText string) (server.SubmitResponse, error) {
	var response server.SubmitResponse
	path := "/api/operations/" + url.PathEscape(operation) + "/submit"
	err := c.do(ctx, http.MethodPost, path, server.SubmitRequest{SourceText: sourceText}, &response)
	return response, err
}

func (c Client) Operations(ctx context.Context) ([]server.OperationView, error) {
	var views []server.OperationView
	err := c.do(ctx, http.MethodGet, "/api/operations", nil, &views)
	return views, err
}

// SetEndpoint stores the edge function URL on the server; an empty value clears it.
func (c Client) SetEndpoint(ctx context.Context, edgeFunctionURL string) (server.EndpointView, error) {
	var view server.EndpointView
	err := c.do(ctx, http.MethodPut, "/api/endpoint", server.EndpointUpdate{URL: &edgeFunctionURL}, &view)
	return view, err
}

func (c Client) do(ctx context.Context, method string, path string, payload any, target any) error {
	var body io.Reader
	if payload != nil {
		encoded, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return fmt.Errorf(encodeRequestErrorFormat, marshalErr)
		}
		body = bytes.NewReader(encoded)
	}

	httpRequest, buildErr := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if buildErr != nil {
		return fmt.Errorf(buildRequestErrorFormat, method, path, buildErr)
	}
	if payload != nil {
		httpRequest.Header.Set("Content-Type", contentTypeJSON)
	}
	httpRequest.Header.Set("Accept", contentTypeJSON)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	httpResponse, httpErr := httpClient.Do(httpRequest)
	if httpErr != nil {
		return fmt.Errorf(httpRequestErrorFormat, method, path, httpErr)
	}
	defer func(closer io.ReadCloser) { _ = closer.Close() }(httpResponse.Body)

	responseBytes, readErr := io.ReadAll(httpResponse.Body)
	if readErr != nil {
		return fmt.Errorf(readResponseErrorFormat, readErr)
	}
	bodyPreview := truncateForLog(string(responseBytes), bodyPreviewLimit)

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return fmt.Errorf(statusErrorFormat, httpResponse.StatusCode, describeError(responseBytes, bodyPreview))
	}
	if err := json.Unmarshal(responseBytes, target); err != nil {
		return fmt.Errorf(decodeResponseErrorFormat, err, bodyPreview)
	}
	return nil
}

func describeError(responseBytes []byte, fallback string) string {
	var errorResponse server.ErrorResponse
	if err := json.Unmarshal(responseBytes, &errorResponse); err == nil && strings.TrimSpace(errorResponse.Error) != "" {
		return errorResponse.Error
	}
	return fallback
}

func truncateForLog(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
