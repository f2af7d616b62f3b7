package fetch

import "sync"

// responseCache keys completed outcomes by the originally requested URL.
// Entries live until ClearCache; a multi-run caller sharing one Client across
// goroutines gets safe concurrent access for free from sync.Map.
type responseCache struct {
	data sync.Map
}

func (c *responseCache) get(url string) (*Outcome, bool) {
	v, ok := c.data.Load(url)
	if !ok {
		return nil, false
	}
	return v.(*Outcome), true
}

func (c *responseCache) set(url string, o *Outcome) {
	c.data.Store(url, o)
}

func (c *responseCache) clear() {
	c.data.Range(func(k, _ any) bool {
		c.data.Delete(k)
		return true
	})
}

// robotsCache keys resolved policies by host. Policies never expire within
// the client's lifetime.
type robotsCache struct {
	data sync.Map
}

func (c *robotsCache) get(host string) (*RobotsPolicy, bool) {
	v, ok := c.data.Load(host)
	if !ok {
		return nil, false
	}
	return v.(*RobotsPolicy), true
}

func (c *robotsCache) set(host string, p *RobotsPolicy) {
	c.data.Store(host, p)
}

func (c *robotsCache) clear() {
	c.data.Range(func(k, _ any) bool {
		c.data.Delete(k)
		return true
	})
}
