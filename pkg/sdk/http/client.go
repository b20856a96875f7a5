package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

type Client struct {
	client *resty.Client
}

type Options struct {
	Timeout    time.Duration
	RetryCount int
}

func NewClient(host string, opt Options) *Client {
	if strings.HasSuffix(host, "/") {
		host = host[:len(host)-1]
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.RetryCount <= 0 {
		opt.RetryCount = 3
	}

	// resty 会自动从环境变量读取代理配置（HTTP_PROXY, HTTPS_PROXY）
	client := resty.New().
		SetBaseURL(host).
		SetTimeout(opt.Timeout).
		SetRetryCount(opt.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			// 如果遇到 429 限流，使用 Retry-After 头
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		})

	return &Client{client: client}
}

// 仅设置本次请求的默认 Header（不要再改 client 级 Header）
func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.client.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	r.SetHeader("Accept", "application/json")
	r.SetHeader("Connection", "keep-alive")
	r.SetHeader("User-Agent", "@namebay/go-client")
	return r
}

// Get issues a GET with the given query values and decodes a 2xx body into out.
// The raw body is returned as well so callers can cache it verbatim.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any) ([]byte, error) {
	rc := c.newRequest(ctx)
	if query != nil {
		rc.SetQueryParamsFromValues(query)
	}

	resp, err := rc.Get(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", endpoint)
	}
	if !resp.IsSuccess() {
		return nil, httpError(resp)
	}
	body := resp.Body()
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return body, errors.Wrapf(err, "decode %s response", endpoint)
		}
	}
	return body, nil
}

func httpError(resp *resty.Response) error {
	var body any
	b := resp.Body()
	_ = json.Unmarshal(b, &body)
	if body == nil {
		body = strings.TrimSpace(string(b))
	}
	return errors.Errorf("http %d on %s: %v", resp.StatusCode(), resp.Request.URL, body)
}

// BaseURL returns the configured host.
func (c *Client) BaseURL() string {
	return c.client.BaseURL
}

// EncodeQuery is a helper for logging the final request line.
func EncodeQuery(endpoint string, query url.Values) string {
	if len(query) == 0 {
		return endpoint
	}
	return fmt.Sprintf("%s?%s", endpoint, query.Encode())
}
