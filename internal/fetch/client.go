package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxRedirects bounds how many redirect hops a single fetch follows.
const DefaultMaxRedirects = 10

const defaultUserAgent = "sitemedic/1.0"

// Options configures a Client.
type Options struct {
	// Timeout applies to each request, including redirect re-resolution.
	// Zero means no timeout.
	Timeout time.Duration

	// UserAgent is sent on every request and matched against robots.txt
	// user-agent groups.
	UserAgent string

	// MaxRedirects caps the redirect chain. Zero means DefaultMaxRedirects.
	MaxRedirects int

	// IgnoreRobots skips the robots-policy check before fetching.
	IgnoreRobots bool

	// EnableHTTP2 turns on HTTP/2 support on the transport.
	EnableHTTP2 bool
}

// Client performs single page fetches with redirect-chain tracking, robots
// enforcement and a per-instance response cache. Both caches are scoped to
// the Client and released with it; ClearCache is the only manual eviction
// path.
type Client struct {
	http      *http.Client
	opts      Options
	logger    zerolog.Logger
	responses responseCache
	robots    robotsCache
	robotsSF  singleflight.Group
}

// NewClient builds a Client around a dedicated transport. Redirects are
// followed manually so that every hop can be recorded.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}

	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	if opts.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			// Redirects are resolved by Fetch itself so the chain is observable.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		opts:   opts,
		logger: logger,
	}
}

// Fetch retrieves rawURL, following redirects up to the configured hop limit.
// Repeated fetches of the same URL within the client's lifetime are served
// from cache with FromCache set and no network traffic.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Outcome, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, newError(KindInvalidURL, rawURL, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, newError(KindInvalidURL, rawURL, fmt.Errorf("unsupported scheme %q", target.Scheme))
	}

	if cached, ok := c.responses.get(rawURL); ok {
		c.logger.Debug().Str("url", rawURL).Msg("Serving fetch from cache")
		hit := *cached
		hit.FromCache = true
		return &hit, nil
	}

	if !c.opts.IgnoreRobots {
		policy := c.robotsPolicy(ctx, target)
		if !policy.Allowed(target.Path) {
			return nil, newError(KindBlocked, rawURL, fmt.Errorf("path %q disallowed by robots policy of %s", target.Path, target.Host))
		}
	}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	outcome, err := c.follow(ctx, rawURL, target)
	if err != nil {
		return nil, err
	}

	c.responses.set(rawURL, outcome)
	c.logger.Debug().
		Str("url", rawURL).
		Int("status", outcome.StatusCode).
		Int("hops", len(outcome.RedirectChain)).
		Int("bytes", outcome.BodyBytes).
		Msg("Fetch completed")

	hit := *outcome
	return &hit, nil
}

// ClearCache drops all cached responses and robots policies.
func (c *Client) ClearCache() {
	c.responses.clear()
	c.robots.clear()
}

// follow issues the request and re-issues it on each redirect response,
// recording the chain. Exceeding the hop limit is a failure, never a silent
// truncation.
func (c *Client) follow(ctx context.Context, requestedURL string, target *url.URL) (*Outcome, error) {
	var chain []RedirectHop
	current := target

	for {
		if len(chain) > c.opts.MaxRedirects {
			return nil, newError(KindTooManyRedirects, requestedURL,
				fmt.Errorf("stopped after %d redirects", c.opts.MaxRedirects))
		}

		resp, err := c.issue(ctx, current)
		if err != nil {
			return nil, classify(requestedURL, err)
		}

		if isRedirect(resp.StatusCode) {
			location := resp.Header.Get("Location")
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			next, err := current.Parse(location)
			if err != nil || location == "" {
				return nil, newError(KindNetwork, requestedURL,
					fmt.Errorf("redirect from %s with unusable location %q", current, location))
			}
			chain = append(chain, RedirectHop{
				URL:        current.String(),
				StatusCode: resp.StatusCode,
				Location:   next.String(),
			})
			current = next
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, classify(requestedURL, err)
		}

		return &Outcome{
			RequestedURL:  requestedURL,
			FinalURL:      current.String(),
			StatusCode:    resp.StatusCode,
			Headers:       flattenHeaders(resp.Header),
			Body:          string(body),
			BodyBytes:     len(body),
			RedirectChain: chain,
			FetchedAt:     time.Now(),
		}, nil
	}
}

func (c *Client) issue(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	return c.http.Do(req)
}

// robotsPolicy resolves and caches the robots policy for the target's host.
// Concurrent resolutions of the same host are collapsed via singleflight.
// Robots fetch failures and non-success statuses mean "no restrictions"; the
// caller is never failed because robots.txt was unreachable.
func (c *Client) robotsPolicy(ctx context.Context, target *url.URL) *RobotsPolicy {
	host := target.Host
	if cached, ok := c.robots.get(host); ok {
		return cached
	}

	v, _, _ := c.robotsSF.Do(host, func() (any, error) {
		policy := c.fetchRobots(ctx, target)
		c.robots.set(host, policy)
		return policy, nil
	})
	return v.(*RobotsPolicy)
}

func (c *Client) fetchRobots(ctx context.Context, target *url.URL) *RobotsPolicy {
	robotsURL := &url.URL{Scheme: target.Scheme, Host: target.Host, Path: "/robots.txt"}

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	resp, err := c.issue(ctx, robotsURL)
	if err != nil {
		c.logger.Debug().Str("host", target.Host).Err(err).Msg("robots.txt unreachable, assuming no restrictions")
		return permissivePolicy()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug().Str("host", target.Host).Int("status", resp.StatusCode).Msg("robots.txt not available, assuming no restrictions")
		return permissivePolicy()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return permissivePolicy()
	}
	return parseRobots(string(body), c.opts.UserAgent)
}

func classify(url string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, url, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, url, err)
	}
	return newError(KindNetwork, url, err)
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}

// flattenHeaders lowercases header names and keeps the first value per name.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		out[strings.ToLower(name)] = values[0]
	}
	return out
}
