package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGreencheckBaseURL is The Green Web Foundation's public API.
const DefaultGreencheckBaseURL = "https://api.thegreenwebfoundation.org"

const greencheckTimeout = 5 * time.Second

// HostingChecker reports whether a host runs on verified green hosting.
type HostingChecker interface {
	IsGreen(ctx context.Context, host string) bool
}

// GreenChecker queries the greencheck API. Lookup failures of any sort
// yield false — this is an enrichment, never a reason to fail a run.
type GreenChecker struct {
	http    *http.Client
	baseURL string
	logger  zerolog.Logger
}

func NewGreenChecker(baseURL string, logger zerolog.Logger) *GreenChecker {
	if baseURL == "" {
		baseURL = DefaultGreencheckBaseURL
	}
	return &GreenChecker{
		http:    &http.Client{Timeout: greencheckTimeout},
		baseURL: baseURL,
		logger:  logger,
	}
}

type greencheckResponse struct {
	Green bool `json:"green"`
}

// IsGreen looks up the host's hosting status. Unknown means false.
func (g *GreenChecker) IsGreen(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}

	endpoint := fmt.Sprintf("%s/greencheck/%s", g.baseURL, url.PathEscape(host))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Debug().Str("host", host).Err(err).Msg("Green hosting lookup failed")
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		g.logger.Debug().Str("host", host).Int("status", resp.StatusCode).Msg("Green hosting lookup returned non-OK status")
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false
	}

	var parsed greencheckResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		g.logger.Debug().Str("host", host).Err(err).Msg("Green hosting lookup returned unparseable body")
		return false
	}
	return parsed.Green
}
