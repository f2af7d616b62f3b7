package fetch

import "time"

// RedirectHop records one followed redirect: the URL that answered with a
// redirect status and where it pointed.
type RedirectHop struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Location   string `json:"location"`
}

// Outcome is one completed retrieval. Non-2xx terminal responses are still
// outcomes; interpreting the status code is the caller's job.
type Outcome struct {
	RequestedURL  string            `json:"requested_url"`
	FinalURL      string            `json:"final_url"`
	StatusCode    int               `json:"status_code"`
	Headers       map[string]string `json:"headers"`
	Body          string            `json:"-"`
	BodyBytes     int               `json:"body_bytes"`
	RedirectChain []RedirectHop     `json:"redirect_chain,omitempty"`
	FromCache     bool              `json:"from_cache"`
	FetchedAt     time.Time         `json:"fetched_at"`
}

// Header returns the value of a response header. Keys are stored lowercased
// with one value per name.
func (o *Outcome) Header(name string) string {
	if o == nil || o.Headers == nil {
		return ""
	}
	return o.Headers[lowerASCII(name)]
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
