// Package jsonrequest issues a single JSON request and returns the decoded
// JSON response, surfacing the decoded error body on non-2xx statuses.
package jsonrequest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/storefront-hq/catalog-client/pkg/httpclient"
)

// ContentTypeJSON is sent as the Content-Type of every request.
const ContentTypeJSON = "application/json"

var jsonNull = []byte("null")

// Request sends data (if any) as JSON to url using method and returns the
// decoded response body. The body is always parsed before the status is
// checked, so an unparsable body yields a BodyParseError even on 4xx/5xx.
func Request(ctx context.Context, client httpclient.Client, url, method string, data any) (any, error) {
	result, _, err := exchange(ctx, client, url, method, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RequestInto behaves like Request and additionally decodes the success body into out.
func RequestInto(ctx context.Context, client httpclient.Client, url, method string, data, out any) error {
	_, resp, err := exchange(ctx, client, url, method, data)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &BodyParseError{StatusCode: resp.StatusCode(), Snippet: bodySnippet(resp.Body()), Err: err}
	}
	return nil
}

func exchange(ctx context.Context, client httpclient.Client, url, method string, data any) (any, httpclient.Response, error) {
	if client == nil {
		return nil, nil, errors.New("http client is nil")
	}
	if strings.TrimSpace(url) == "" {
		return nil, nil, errors.New("request url is empty")
	}
	if strings.TrimSpace(method) == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(data)
	if err != nil {
		return nil, nil, err
	}

	resp, err := client.Do(ctx, httpclient.Request{
		Method:  method,
		URL:     url,
		Headers: map[string]string{"Content-Type": ContentTypeJSON},
		Body:    body,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("send request: %w", err)
	}

	var result any
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, nil, &BodyParseError{StatusCode: resp.StatusCode(), Snippet: bodySnippet(resp.Body()), Err: err}
	}

	if !isSuccess(resp.StatusCode()) {
		return nil, nil, &RequestFailedError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Payload:    result,
		}
	}
	return result, resp, nil
}

// encodeBody returns nil when data is absent or encodes to JSON null.
func encodeBody(data any) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	if bytes.Equal(raw, jsonNull) {
		return nil, nil
	}
	return raw, nil
}

func isSuccess(code int) bool { return code >= 200 && code <= 299 }
