package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"searchbench/internal/catalog"
)

// ESClient talks to an Elasticsearch-compatible HTTP search API.
type ESClient struct {
	BaseURL string
	Index   string
	Client  *http.Client
}

// NewESClient builds a client with a connection pool sized for many
// concurrent workers and a hard per-request timeout.
func NewESClient(baseURL, index string, timeout time.Duration) *ESClient {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxConnsPerHost = 2000
	t.MaxIdleConnsPerHost = 2000
	t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &ESClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Index:   index,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: t,
		},
	}
}

type searchResponse struct {
	Took float64 `json:"took"`
	Hits struct {
		Total json.RawMessage `json:"total"`
	} `json:"hits"`
}

// Execute runs one _search request and classifies the outcome. All failures
// are folded into the Outcome; Execute never panics or returns a Go error.
func (c *ESClient) Execute(ctx context.Context, tpl catalog.Template) Outcome {
	body, status, err := c.doSearch(ctx, tpl)
	if err != nil {
		return Outcome{Err: classify(err)}
	}
	if status >= 500 {
		return Outcome{Err: &RequestError{Kind: KindServer, Message: httpMessage(status, body)}}
	}
	if status >= 400 {
		return Outcome{Err: &RequestError{Kind: KindRequest, Message: httpMessage(status, body)}}
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Outcome{Err: &RequestError{Kind: KindResponse, Message: err.Error()}}
	}

	took := resp.Took
	hits := decodeTotalHits(resp.Hits.Total)
	return Outcome{TookMs: &took, TotalHits: hits}
}

// SearchRaw runs one _search request and returns the raw response body,
// for the one-shot query runner.
func (c *ESClient) SearchRaw(ctx context.Context, tpl catalog.Template) ([]byte, error) {
	body, status, err := c.doSearch(ctx, tpl)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, errors.Errorf("search returned HTTP %d: %s", status, httpMessage(status, body))
	}
	return body, nil
}

func (c *ESClient) doSearch(ctx context.Context, tpl catalog.Template) ([]byte, int, error) {
	payload, err := json.Marshal(tpl.Body())
	if err != nil {
		return nil, 0, err
	}

	endpoint := fmt.Sprintf("%s/%s/_search", c.BaseURL, url.PathEscape(c.Index))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// ClearCache resets the index request cache so each scenario starts fair.
func (c *ESClient) ClearCache(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/%s/_cache/clear", c.BaseURL, url.PathEscape(c.Index))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return errors.Errorf("cache clear returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// Ping checks the endpoint is reachable before a run starts.
func (c *ESClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "service unreachable at %s", c.BaseURL)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// decodeTotalHits handles both the object form {"value": N, "relation": ...}
// and the legacy bare-integer form.
func decodeTotalHits(raw json.RawMessage) *int64 {
	if raw == nil {
		return nil
	}
	var obj struct {
		Value int64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && len(raw) > 0 && raw[0] == '{' {
		return &obj.Value
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	return nil
}

func classify(err error) *RequestError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &RequestError{Kind: KindTimeout, Message: err.Error()}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &RequestError{Kind: KindTimeout, Message: err.Error()}
	default:
		return &RequestError{Kind: KindConnection, Message: err.Error()}
	}
}

func httpMessage(status int, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		return fmt.Sprintf("HTTP %d", status)
	}
	return fmt.Sprintf("HTTP %d: %s", status, msg)
}
