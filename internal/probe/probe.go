package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultConnectTimeout = 2 * time.Second
	DefaultTimeout        = 5 * time.Second
	DefaultUserAgent      = "provider-filter/1.0"
)

// ErrStatus marks a response whose status code counts as a failure.
var ErrStatus = errors.New("unsuccessful status")

// Options configures a Prober. Zero values fall back to the defaults.
type Options struct {
	Method         string
	ConnectTimeout time.Duration
	Timeout        time.Duration
	UserAgent      string
}

// Result is the outcome of one probe. StatusCode is 0 when no response
// was received.
type Result struct {
	URL        string
	Reachable  bool
	StatusCode int
	Latency    time.Duration
	Err        error
}

// Prober issues reachability probes with a shared HTTP client.
type Prober struct {
	client    *http.Client
	method    string
	userAgent string
}

// New creates a Prober. Connection establishment (TCP and TLS) is bounded
// by ConnectTimeout and the whole exchange by Timeout.
func New(opts Options) *Prober {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	dialer := &net.Dialer{
		Timeout: opts.ConnectTimeout,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   opts.ConnectTimeout,
		ResponseHeaderTimeout: opts.Timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}

	return &Prober{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		method:    opts.Method,
		userAgent: opts.UserAgent,
	}
}

// Probe performs a single request against rawURL. It never retries and
// reports every failure through Result.Err.
func (p *Prober) Probe(ctx context.Context, rawURL string) Result {
	res := Result{URL: rawURL}

	if err := ValidateURL(rawURL); err != nil {
		res.Err = err
		return res
	}

	req, err := http.NewRequestWithContext(ctx, p.method, rawURL, nil)
	if err != nil {
		res.Err = err
		return res
	}
	req.Header.Set("User-Agent", p.userAgent)

	start := time.Now()
	resp, err := p.client.Do(req)
	res.Latency = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	resp.Body.Close()

	res.StatusCode = resp.StatusCode
	if !Successful(resp.StatusCode) {
		res.Err = fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
		return res
	}

	res.Reachable = true
	return res
}

// Successful reports whether a status code counts as reachable: 2xx and 3xx.
func Successful(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusBadRequest
}

// ValidateURL checks that rawURL parses as an absolute http or https URL
// with a host. Length and host syntax are left to the request itself.
func ValidateURL(rawURL string) error {
	return validation.Validate(rawURL,
		validation.Required,
		validation.By(validateScheme),
	)
}

func validateScheme(value interface{}) error {
	rawURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
