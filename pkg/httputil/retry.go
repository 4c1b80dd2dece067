package httputil

import (
	"errors"
	"math/rand"
	"net"
	"net/http"
	"time"
)

type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RetryClient wraps an http.Client with exponential backoff on transient
// failures. Backoff waits honor the request context, so a canceled sync
// request does not keep a speech call alive.
type RetryClient struct {
	client *http.Client
	config RetryConfig
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	}
}

func NewRetryClient(client *http.Client, config RetryConfig) *RetryClient {
	if client == nil {
		client = http.DefaultClient
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.InitialDelay == 0 {
		config.InitialDelay = 500 * time.Millisecond
	}
	if config.MaxDelay == 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.Multiplier == 0 {
		config.Multiplier = 2.0
	}

	return &RetryClient{
		client: client,
		config: config,
	}
}

func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	delay := c.config.InitialDelay

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, bodyErr
				}
				req.Body = body
			}

			if waitErr := wait(req, applyJitter(delay)); waitErr != nil {
				return nil, waitErr
			}
			delay = min(time.Duration(float64(delay)*c.config.Multiplier), c.config.MaxDelay)
		}

		resp, err = c.client.Do(req)
		if !shouldRetry(resp, err) {
			return resp, err
		}

		if resp != nil {
			_ = resp.Body.Close()
		}
	}

	return resp, err
}

func wait(req *http.Request, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return true
		}
		var dnsErr *net.DNSError
		return errors.As(err, &dnsErr)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return resp.StatusCode >= 500 && resp.StatusCode < 600
}

func applyJitter(delay time.Duration) time.Duration {
	jitterFactor := 0.9 + rand.Float64()*0.2
	return time.Duration(float64(delay) * jitterFactor)
}
