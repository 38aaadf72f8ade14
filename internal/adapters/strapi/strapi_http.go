package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"shipment-tracker-web/internal/domain"
)

// maxErrorBody caps how much of a failed response body is kept for logging.
const maxErrorBody = 4 << 10

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// request describes one call to the content API.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	kind   domain.ErrorKind
}

func (r request) op() string {
	return r.method + " " + r.path
}

func (c *Client) newRequest(ctx context.Context, sess *domain.Session, r request) (*http.Request, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h := sess.AuthorizationHeader(); h != "" {
		req.Header.Set("Authorization", h)
	}

	return req, nil
}

// call issues the request and decodes a 2xx JSON body into out (when non-nil).
// Every failure is returned as a *domain.APIError of the request's kind.
func (c *Client) call(ctx context.Context, sess *domain.Session, r request, out any) error {
	req, err := c.newRequest(ctx, sess, r)
	if err != nil {
		return &domain.APIError{Kind: r.kind, Op: r.op(), Err: err}
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return &domain.APIError{Kind: r.kind, Op: r.op(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.APIError{
			Kind:       r.kind,
			Op:         r.op(),
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Err: &httpStatusError{
				Code: resp.StatusCode,
				Body: strings.TrimSpace(string(b)),
			},
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.APIError{
			Kind:       r.kind,
			Op:         r.op(),
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}

	return nil
}

// statusText prefers the reason phrase the server actually sent.
func statusText(resp *http.Response) string {
	code := fmt.Sprintf("%d ", resp.StatusCode)
	if text := strings.TrimPrefix(resp.Status, code); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
