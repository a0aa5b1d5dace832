package redfish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Device is the connection triple for one management controller.
type Device struct {
	Address  string
	Username string
	Password string
}

type Options struct {
	// Timeout bounds every outbound call.
	Timeout time.Duration
	// RequestsPerSecond throttles calls across the whole fleet; 0 = no limit.
	RequestsPerSecond float64
}

// Client talks HTTPS to management controllers with basic auth.
//
// Certificate validation is disabled on purpose: iDRAC/iLO ship self-signed
// certificates and live on closed management networks. Do not reuse this
// client for anything internet-facing.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	tr := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: opts.Timeout,
	}

	var lim *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		http:    &http.Client{Transport: tr},
		limiter: lim,
		timeout: opts.Timeout,
	}
}

// Fetch GETs https://<address><path> and decodes the JSON body into out.
// Non-2xx statuses are errors that include the status code.
func (c *Client) Fetch(ctx context.Context, dev Device, path string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := "https://" + dev.Address + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(dev.Username, dev.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
