package page

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseError marks content that could not be understood as a page, including
// panics escaping the underlying HTML machinery.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse page: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse builds a Document from a raw HTML body. base is the page's final URL
// and is used to classify links as internal or external; it may be nil.
//
// Parse never panics: any fault raised while walking the tree is normalized
// into a *ParseError.
func Parse(rawBody string, base *url.URL) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = &ParseError{Err: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	gq, gqErr := goquery.NewDocumentFromReader(strings.NewReader(rawBody))
	if gqErr != nil {
		return nil, &ParseError{Err: gqErr}
	}

	doc = &Document{
		HTMLVersion: detectHTMLVersion(rawBody),
		Headings:    map[int]int{},
	}

	doc.Title = strings.TrimSpace(gq.Find("head title").First().Text())
	doc.MetaDescription, _ = gq.Find(`head meta[name="description"]`).First().Attr("content")
	doc.MetaDescription = strings.TrimSpace(doc.MetaDescription)
	doc.Lang, _ = gq.Find("html").First().Attr("lang")

	for level := 1; level <= 6; level++ {
		if n := gq.Find(fmt.Sprintf("h%d", level)).Length(); n > 0 {
			doc.Headings[level] = n
		}
	}

	gq.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		classifyLink(doc, base, href)
	})

	collectResources(doc, gq)

	doc.InlineScripts = gq.Find("script").Not("script[src]").Length()
	doc.InlineStyles = gq.Find("style").Length() + gq.Find("[style]").Length()

	doc.HasForm = gq.Find("form").Length() > 0
	doc.HasLoginForm = gq.Find(`form input[type="password"]`).Length() > 0

	return doc, nil
}

func classifyLink(doc *Document, base *url.URL, href string) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") {
		return
	}

	u, err := url.Parse(href)
	if err != nil {
		return
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	if base != nil && u.Host != "" && !strings.EqualFold(u.Host, base.Host) {
		doc.Links.External++
	} else {
		doc.Links.Internal++
	}
}

func collectResources(doc *Document, gq *goquery.Document) {
	add := func(t ResourceType, ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "data:") {
			return
		}
		doc.Resources = append(doc.Resources, ResourceRef{Type: t, URL: ref})
	}

	gq.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(ResourceScript, src)
	})
	gq.Find(`link[rel="stylesheet"][href]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(ResourceStylesheet, href)
	})
	gq.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(ResourceImage, src)
	})
	gq.Find("video[src], audio[src], source[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(ResourceMedia, src)
	})
	gq.Find(`link[rel="preload"][as="font"][href], link[rel="font"][href]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(ResourceFont, href)
	})
	gq.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(ResourceIframe, src)
	})
}

// detectHTMLVersion reports the document's declared HTML version from its
// doctype. An absent doctype yields "unknown".
func detectHTMLVersion(rawBody string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawBody))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return "unknown"
		case html.DoctypeToken:
			doctype := strings.ToLower(strings.TrimSpace(string(tokenizer.Text())))
			switch {
			case doctype == "html":
				return "HTML5"
			case strings.Contains(doctype, "xhtml 1.0"):
				return "XHTML 1.0"
			case strings.Contains(doctype, "xhtml 1.1"):
				return "XHTML 1.1"
			case strings.Contains(doctype, "html 4.01"):
				return "HTML 4.01"
			case strings.Contains(doctype, "html 3.2"):
				return "HTML 3.2"
			default:
				return doctype
			}
		case html.StartTagToken:
			// Doctype must precede content; stop as soon as markup begins.
			return "unknown"
		}
	}
}
