package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRobots_WildcardGroup(t *testing.T) {
	body := `
User-agent: *
Disallow: /private
Allow: /private/press
`
	p := parseRobots(body, "sitemedic/1.0")

	assert.True(t, p.Allowed("/"))
	assert.True(t, p.Allowed("/about"))
	assert.False(t, p.Allowed("/private"))
	assert.False(t, p.Allowed("/private/archive"))
	assert.True(t, p.Allowed("/private/press"), "longest prefix wins")
	assert.True(t, p.Allowed("/private/press/2024"))
}

func TestParseRobots_SpecificGroupWinsOverWildcard(t *testing.T) {
	body := `
User-agent: *
Disallow: /

User-agent: sitemedic
Disallow: /admin
`
	p := parseRobots(body, "sitemedic/1.0 (+https://example.com)")

	assert.True(t, p.Allowed("/"), "specific group replaces the wildcard group")
	assert.False(t, p.Allowed("/admin"))
	assert.False(t, p.Allowed("/admin/users"))
}

func TestParseRobots_RootDisallowDeniesEverything(t *testing.T) {
	body := `
User-agent: *
Disallow: /
Allow: /public
`
	p := parseRobots(body, "sitemedic/1.0")

	assert.False(t, p.Allowed("/"))
	assert.False(t, p.Allowed("/anything"))
	assert.True(t, p.Allowed("/public"))
	assert.True(t, p.Allowed("/public/docs"))
}

func TestParseRobots_EmptyDisallowMeansNoRestrictions(t *testing.T) {
	body := `
User-agent: *
Disallow:
`
	p := parseRobots(body, "sitemedic/1.0")

	assert.True(t, p.Allowed("/"))
	assert.True(t, p.Allowed("/anywhere"))
	assert.Empty(t, p.Rules())
}

func TestParseRobots_CommentsAndUnknownDirectives(t *testing.T) {
	body := `
# global policy
User-agent: *
Crawl-delay: 10
Disallow: /tmp # temp files
Sitemap: https://example.com/sitemap.xml
`
	p := parseRobots(body, "sitemedic/1.0")

	assert.False(t, p.Allowed("/tmp"))
	assert.True(t, p.Allowed("/"))
	assert.Equal(t, []RobotsRule{{Path: "/tmp", Allow: false}}, p.Rules())
}

func TestParseRobots_StackedAgentHeaders(t *testing.T) {
	body := `
User-agent: otherbot
User-agent: sitemedic
Disallow: /shared

User-agent: thirdbot
Disallow: /
`
	p := parseRobots(body, "sitemedic/1.0")

	assert.False(t, p.Allowed("/shared"))
	assert.True(t, p.Allowed("/"), "thirdbot group must not apply")
}

func TestRobotsPolicy_NilAndPermissive(t *testing.T) {
	var nilPolicy *RobotsPolicy
	assert.True(t, nilPolicy.Allowed("/anything"))
	assert.True(t, permissivePolicy().Allowed("/anything"))
}

func TestProductToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sitemedic/1.0", "sitemedic"},
		{"sitemedic/1.0 (+https://example.com)", "sitemedic"},
		{"sitemedic", "sitemedic"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, productToken(tt.in))
	}
}
