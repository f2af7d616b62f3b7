package fetch

import (
	"bufio"
	"strings"
)

// RobotsRule is one allow/disallow directive scoped to the user-agent group
// it was parsed from.
type RobotsRule struct {
	Path  string
	Allow bool
}

// RobotsPolicy is the resolved set of rules governing one host for one
// user agent. Matching is longest-prefix-wins; when no rule matches, the
// result depends on whether the host published a restrictive policy for this
// agent at all (see Allowed).
type RobotsPolicy struct {
	rules       []RobotsRule
	restrictive bool
}

// permissivePolicy is used when robots.txt is missing or unreadable: the
// absence of a policy never blocks retrieval.
func permissivePolicy() *RobotsPolicy {
	return &RobotsPolicy{}
}

// Allowed reports whether the given URL path may be fetched under this
// policy. The longest matching rule prefix wins; a tie between an allow and a
// disallow of equal length resolves to allow. A path matching no rule is
// allowed unless the host published a restrictive policy (a root-level
// disallow for this agent), in which case unmatched paths are denied.
func (p *RobotsPolicy) Allowed(path string) bool {
	if p == nil {
		return true
	}
	if path == "" {
		path = "/"
	}

	bestLen := -1
	allowed := !p.restrictive
	for _, r := range p.rules {
		if !strings.HasPrefix(path, r.Path) {
			continue
		}
		n := len(r.Path)
		if n > bestLen || (n == bestLen && r.Allow) {
			bestLen = n
			allowed = r.Allow
		}
	}
	return allowed
}

// Rules returns a copy of the policy's directives in parse order.
func (p *RobotsPolicy) Rules() []RobotsRule {
	if p == nil || len(p.rules) == 0 {
		return nil
	}
	out := make([]RobotsRule, len(p.rules))
	copy(out, p.rules)
	return out
}

// parseRobots extracts the rule group applying to userAgent from a robots.txt
// body. A group addressed to the agent by name takes precedence over the "*"
// wildcard group; directives from other groups are ignored.
func parseRobots(body, userAgent string) *RobotsPolicy {
	agentToken := strings.ToLower(productToken(userAgent))

	var wildcard, specific []RobotsRule
	haveSpecific := false

	// Which of the two collected groups the current directives belong to.
	inWildcard, inSpecific := false, false
	// Consecutive User-agent lines extend the same group; any other
	// directive closes the group header.
	inAgentHeader := false

	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "user-agent":
			if !inAgentHeader {
				inWildcard, inSpecific = false, false
			}
			inAgentHeader = true
			agent := strings.ToLower(value)
			if agent == "*" {
				inWildcard = true
			} else if agentToken != "" && strings.Contains(agentToken, agent) {
				inSpecific = true
				haveSpecific = true
			}
		case "allow", "disallow":
			inAgentHeader = false
			if value == "" {
				// An empty Disallow means "nothing is disallowed"; it
				// carries no rule either way.
				continue
			}
			if !inWildcard && !inSpecific {
				continue
			}
			rule := RobotsRule{Path: value, Allow: field == "allow"}
			if inSpecific {
				specific = append(specific, rule)
			} else {
				wildcard = append(wildcard, rule)
			}
		default:
			inAgentHeader = false
		}
	}

	rules := wildcard
	if haveSpecific {
		rules = specific
	}

	p := &RobotsPolicy{rules: rules}
	for _, r := range rules {
		if !r.Allow && r.Path == "/" {
			p.restrictive = true
			break
		}
	}
	return p
}

// productToken reduces a full User-Agent string to its product name, the part
// robots.txt groups are matched against ("sitemedic/1.0 (+https://...)" ->
// "sitemedic").
func productToken(userAgent string) string {
	ua := strings.TrimSpace(userAgent)
	for i, c := range ua {
		if c == '/' || c == ' ' {
			return ua[:i]
		}
	}
	return ua
}
