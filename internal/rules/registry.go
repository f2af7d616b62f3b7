package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Rule)
	mu       sync.RWMutex
)

func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	registry[r.ID()] = r
}

// List returns every registered rule sorted by ID. The order is stable across
// runs; the engine preserves it in its results.
func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	var rules []Rule
	for _, r := range registry {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})
	return rules
}

// Resolve selects rules by a comma-separated list of IDs. An empty selector
// means all rules.
func Resolve(selector string) ([]Rule, error) {
	if selector == "" {
		return List(), nil
	}

	mu.RLock()
	defer mu.RUnlock()

	ids := strings.Split(selector, ",")
	var selected []Rule
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if r, ok := registry[id]; ok {
			selected = append(selected, r)
		} else {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
	}
	return selected, nil
}

// FilterByCategory keeps the rules belonging to any of the given categories,
// preserving order. An empty category list keeps everything.
func FilterByCategory(rs []Rule, categories []Category) []Rule {
	if len(categories) == 0 {
		return rs
	}
	wanted := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	var out []Rule
	for _, r := range rs {
		if _, ok := wanted[r.Category()]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ParseStatuses validates a list of status names against the known set.
func ParseStatuses(names []string) ([]Status, error) {
	known := make(map[Status]struct{})
	for _, s := range KnownStatuses() {
		known[s] = struct{}{}
	}
	var out []Status
	for _, name := range names {
		s := Status(strings.ToLower(strings.TrimSpace(name)))
		if s == "" {
			continue
		}
		if _, ok := known[s]; !ok {
			return nil, fmt.Errorf("unknown status: %s", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseCategories validates a list of category names against the known set.
func ParseCategories(names []string) ([]Category, error) {
	known := make(map[Category]struct{})
	for _, c := range KnownCategories() {
		known[c] = struct{}{}
	}
	var out []Category
	for _, name := range names {
		c := Category(strings.ToLower(strings.TrimSpace(name)))
		if c == "" {
			continue
		}
		if _, ok := known[c]; !ok {
			return nil, fmt.Errorf("unknown category: %s", name)
		}
		out = append(out, c)
	}
	return out, nil
}
