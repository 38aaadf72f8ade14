package strapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Tracking lookup query styles, mirrored from config so this package has no
// dependency on it.
const (
	LookupFilters = "filters"
	LookupPlain   = "plain"
)

// Client implements ports.ContentAPI against a Strapi v4 REST API.
//
// Every method performs exactly one HTTP request. There is no retry; the
// http.Client timeout and the caller's context bound each call.
// The client is safe for concurrent use.
type Client struct {
	session     *http.Client
	baseURL     string
	lookupStyle string
}

func NewClient(baseURL string, timeout time.Duration, lookupStyle string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("strapi client: base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("strapi client: parse base url %q: %w", baseURL, err)
	}

	switch lookupStyle {
	case "":
		lookupStyle = LookupFilters
	case LookupFilters, LookupPlain:
	default:
		return nil, fmt.Errorf("strapi client: unknown lookup style %q", lookupStyle)
	}

	return &Client{
		session:     &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		lookupStyle: lookupStyle,
	}, nil
}
