package tradervue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rustyeddy/tradervue-go/internal/id"
	"github.com/sirupsen/logrus"
)

// response captures everything the resource helpers need from an HTTP
// exchange. HTTP-level failures (4xx/5xx) are not errors at this layer; the
// status code is handed back for the caller to interpret.
type response struct {
	status int
	header http.Header
	body   []byte
	url    string
}

func (c *Client) get(ctx context.Context, url string, query url.Values) (*response, error) {
	return c.do(ctx, http.MethodGet, url, nil, query)
}

func (c *Client) put(ctx context.Context, url string, payload any) (*response, error) {
	return c.do(ctx, http.MethodPut, url, payload, nil)
}

func (c *Client) post(ctx context.Context, url string, payload any) (*response, error) {
	return c.do(ctx, http.MethodPost, url, payload, nil)
}

func (c *Client) delete(ctx context.Context, url string) (*response, error) {
	return c.do(ctx, http.MethodDelete, url, nil, nil)
}

// do performs one authenticated call. Network and encoding failures return
// an error; any HTTP status comes back in the response untouched.
func (c *Client) do(ctx context.Context, method, target string, payload any, query url.Values) (*response, error) {
	var body io.Reader
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.targetUser != "" {
		req.Header.Set("Tradervue-UserId", c.targetUser)
	}

	var reqLog logrus.FieldLogger
	if c.verboseHTTP {
		reqLog = c.log.WithField("req", id.New())
		reqLog.Debugf("REQUEST:  %s %s", method, req.URL.String())
		reqLog.Debugf("          headers %v", req.Header)
		reqLog.Debugf("          user    %s", c.username)
		reqLog.Debugf("          payload %s", encoded)
		reqLog.Debugf("          params  %v", query)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.String(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if c.verboseHTTP {
		reqLog.Debugf("RESPONSE: %s %s", method, req.URL.String())
		reqLog.Debugf("          code    %d", resp.StatusCode)
		reqLog.Debugf("          headers %v", resp.Header)
		reqLog.Debugf("          body    %s", data)
	}

	return &response{
		status: resp.StatusCode,
		header: resp.Header,
		body:   data,
		url:    req.URL.String(),
	}, nil
}
