package page

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <title>Example Page</title>
  <meta name="description" content="A sample page for tests.">
  <link rel="stylesheet" href="/styles/main.css">
  <style>body { margin: 0 }</style>
</head>
<body>
  <h1>Main</h1>
  <h2>Section A</h2>
  <h2>Section B</h2>
  <a href="/about">About</a>
  <a href="https://example.com/internal">Internal absolute</a>
  <a href="https://other.test/page">External</a>
  <a href="#frag">Fragment</a>
  <a href="mailto:hi@example.com">Mail</a>
  <img src="/img/logo.png" alt="logo">
  <img src="https://cdn.other.test/banner.jpg" alt="banner">
  <script src="https://cdn.other.test/app.js"></script>
  <script>console.log("inline")</script>
  <iframe src="https://embed.other.test/widget"></iframe>
  <form action="/login"><input type="text" name="user"><input type="password" name="pw"></form>
</body>
</html>`

func TestParse_Document(t *testing.T) {
	base, _ := url.Parse("https://example.com/page")
	doc, err := Parse(samplePage, base)
	require.NoError(t, err)

	assert.Equal(t, "HTML5", doc.HTMLVersion)
	assert.Equal(t, "Example Page", doc.Title)
	assert.Equal(t, "A sample page for tests.", doc.MetaDescription)
	assert.Equal(t, "en", doc.Lang)
	assert.Equal(t, map[int]int{1: 1, 2: 2}, doc.Headings)

	assert.Equal(t, 2, doc.Links.Internal, "fragment and mailto links are not counted")
	assert.Equal(t, 1, doc.Links.External)

	assert.Equal(t, 1, doc.ResourceCount(ResourceStylesheet))
	assert.Equal(t, 2, doc.ResourceCount(ResourceImage))
	assert.Equal(t, 1, doc.ResourceCount(ResourceScript))
	assert.Equal(t, 1, doc.ResourceCount(ResourceIframe))

	assert.Equal(t, 1, doc.InlineScripts)
	assert.Equal(t, 1, doc.InlineStyles)
	assert.True(t, doc.HasForm)
	assert.True(t, doc.HasLoginForm)
}

func TestParse_EmptyBody(t *testing.T) {
	doc, err := Parse("", nil)
	require.NoError(t, err, "an empty body parses to an empty document, never a fault")
	assert.Equal(t, "unknown", doc.HTMLVersion)
	assert.Empty(t, doc.Title)
	assert.Empty(t, doc.Resources)
}

func TestParse_NotHTML(t *testing.T) {
	doc, err := Parse(`{"json": true}`, nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Title)
}

func TestDetectHTMLVersion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"html5", "<!DOCTYPE html><html></html>", "HTML5"},
		{"html401", `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><html></html>`, "HTML 4.01"},
		{"xhtml10", `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"><html></html>`, "XHTML 1.0"},
		{"missing", "<html><body></body></html>", "unknown"},
		{"empty", "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectHTMLVersion(tt.body))
		})
	}
}
