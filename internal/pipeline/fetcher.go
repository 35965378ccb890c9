package pipeline

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/wordbank/internal/util"
)

// ErrDisallowed is returned when robots.txt forbids downloading a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError is returned for a non-2xx response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "unexpected status: " + e.Status
}

// TransportError is returned when the request never got a response
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "fetch: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher downloads remote CSV exports
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil skips robots.txt checks
}

// NewFetcher creates a new Fetcher. Empty proxy values fall back to the environment.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(httpProxy, httpsProxy, noProxy)
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// RespectRobots makes every download consult robots.txt on the target host first
func (f *Fetcher) RespectRobots(checker *util.RobotsChecker) {
	f.robots = checker
}

// Fetch retrieves the body at rawURL, truncated to the configured size limit
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if f.robots != nil {
		allowed, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("check robots.txt: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", f.maxBytes)
	}

	return body, nil
}

// fetchSleepFunc is swapped out in tests
var fetchSleepFunc = sleepContext

const fetchAttempts = 3

// FetchWithRetry retries transient failures (5xx, 429, transport errors) with linear backoff
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		body, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || ctx.Err() != nil || attempt == fetchAttempts {
			break
		}
		if err := fetchSleepFunc(ctx, time.Duration(attempt)*time.Second); err != nil {
			return nil, fmt.Errorf("retry %s after %d attempts: %w", rawURL, attempt, err)
		}
	}
	return nil, lastErr
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableFetchError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500 || statusErr.Code == http.StatusTooManyRequests
	}
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// OpenInput opens a local path, "-" for stdin, or an http(s) URL
func (f *Fetcher) OpenInput(ctx context.Context, input string) (io.ReadCloser, error) {
	switch {
	case input == "-":
		return io.NopCloser(os.Stdin), nil
	case isRemote(input):
		body, err := f.FetchWithRetry(ctx, input)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	default:
		file, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return file, nil
	}
}

func isRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
