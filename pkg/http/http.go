// Package http is a small fluent client for outgoing JSON calls.
//
//	resp, err := http.Post(ctx, registryURL).
//	    Body(map[string]string{"menuId": id}).
//	    Timeout(5 * time.Second).
//	    Send()
//	if err == nil {
//	    err = resp.Throw()
//	}
//
// Attempts default to one; Retry opts a caller into exponential backoff.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"time"

	"github.com/shashiranjanraj/qrmenu/pkg/logger"
	"github.com/shashiranjanraj/qrmenu/pkg/reqid"
)

var defaultTransport = &gohttp.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is shared by every outgoing request. Tests may swap its
// Transport and restore it with ResetTransport.
var DefaultClient = &gohttp.Client{Transport: defaultTransport}

func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// Request is a fluent request builder.
type Request struct {
	ctx       context.Context
	method    string
	url       string
	headers   map[string]string
	body      interface{}
	timeout   time.Duration
	attempts  int
	retryWait time.Duration
}

func Get(ctx context.Context, url string) *Request  { return newRequest(ctx, gohttp.MethodGet, url) }
func Post(ctx context.Context, url string) *Request { return newRequest(ctx, gohttp.MethodPost, url) }

func newRequest(ctx context.Context, method, url string) *Request {
	return &Request{
		ctx:       ctx,
		method:    method,
		url:       url,
		headers:   map[string]string{"Accept": "application/json"},
		timeout:   30 * time.Second,
		attempts:  1,
		retryWait: 500 * time.Millisecond,
	}
}

func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Body sets a JSON body; v is marshalled on Send.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// Timeout bounds each attempt.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Retry sets the total number of attempts and the initial backoff, which
// doubles after every failed attempt.
func (r *Request) Retry(attempts int, wait time.Duration) *Request {
	if attempts < 1 {
		attempts = 1
	}
	r.attempts = attempts
	r.retryWait = wait
	return r
}

// Send performs the request. Transport errors are retried; any HTTP status
// is a response, check it with Throw.
func (r *Request) Send() (*Response, error) {
	var lastErr error
	wait := r.retryWait

	for attempt := 1; attempt <= r.attempts; attempt++ {
		resp, err := r.do()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == r.attempts {
			break
		}
		logger.WithCtx(r.ctx).Warn("http: request failed, retrying",
			"url", r.url, "attempt", attempt, "backoff", wait, "error", err)

		select {
		case <-time.After(wait):
		case <-r.ctx.Done():
			return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, r.ctx.Err())
		}
		wait *= 2
	}

	return nil, fmt.Errorf("http: %d attempt(s) failed for %s %s: %w", r.attempts, r.method, r.url, lastErr)
}

func (r *Request) do() (*Response, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("http: marshal body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := reqid.FromCtx(r.ctx); id != "" {
		req.Header.Set(reqid.Header, id)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Raw: raw}, nil
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}

// Throw returns an error for any non-2xx status.
func (r *Response) Throw() error {
	if !r.OK() {
		return fmt.Errorf("http: request failed with status %d: %s", r.StatusCode, string(r.Raw))
	}
	return nil
}
