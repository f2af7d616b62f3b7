package page

import (
	"net/url"
	"strings"

	"sitemedic/internal/fetch"
)

// WeightMetrics are derived transfer-weight figures computed once when the
// snapshot is assembled.
type WeightMetrics struct {
	BodyBytes      int                  `json:"body_bytes"`
	ResourceCounts map[ResourceType]int `json:"resource_counts"`
	TotalResources int                  `json:"total_resources"`
	FirstParty     int                  `json:"first_party"`
	ThirdParty     int                  `json:"third_party"`
	Compressed     bool                 `json:"compressed"`
}

// Snapshot is the immutable unit every rule receives: the requested URL, the
// completed fetch, the parsed document and the derived weight metrics. It is
// constructed exactly once per run and never mutated afterward.
type Snapshot struct {
	URL      string
	Fetch    *fetch.Outcome
	Document *Document
	Weight   WeightMetrics
}

// NewSnapshot assembles a snapshot and computes its weight metrics.
func NewSnapshot(rawURL string, outcome *fetch.Outcome, doc *Document) *Snapshot {
	snap := &Snapshot{
		URL:      rawURL,
		Fetch:    outcome,
		Document: doc,
	}

	w := WeightMetrics{ResourceCounts: map[ResourceType]int{}}
	if outcome != nil {
		w.BodyBytes = outcome.BodyBytes
		w.Compressed = isCompressed(outcome.Header("Content-Encoding"))
	}

	var pageHost string
	if outcome != nil {
		if u, err := url.Parse(outcome.FinalURL); err == nil {
			pageHost = u.Host
		}
	}

	if doc != nil {
		for _, r := range doc.Resources {
			w.ResourceCounts[r.Type]++
			w.TotalResources++
			if sameParty(pageHost, r.URL) {
				w.FirstParty++
			} else {
				w.ThirdParty++
			}
		}
	}

	snap.Weight = w
	return snap
}

func isCompressed(encoding string) bool {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip", "br", "zstd", "deflate":
		return true
	}
	return false
}

// sameParty treats relative references and same-registrable-host absolute
// references as first party. A bare "www." prefix difference does not make a
// resource third party.
func sameParty(pageHost, resourceURL string) bool {
	u, err := url.Parse(resourceURL)
	if err != nil {
		return true
	}
	if u.Host == "" {
		return true
	}
	return normalizeHost(u.Host) == normalizeHost(pageHost)
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
