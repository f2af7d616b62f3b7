package page

// ResourceType classifies references a page makes to external assets.
type ResourceType string

const (
	ResourceScript     ResourceType = "script"
	ResourceStylesheet ResourceType = "stylesheet"
	ResourceImage      ResourceType = "image"
	ResourceMedia      ResourceType = "media"
	ResourceFont       ResourceType = "font"
	ResourceIframe     ResourceType = "iframe"
)

// ResourceRef is one reference to an external asset.
type ResourceRef struct {
	Type ResourceType `json:"type"`
	URL  string       `json:"url"`
}

// LinkStats partitions anchor targets into same-host and external links.
type LinkStats struct {
	Internal int `json:"internal"`
	External int `json:"external"`
}

// Document is the structured representation of a parsed page. It is built
// once per run and treated as read-only afterward.
type Document struct {
	HTMLVersion     string       `json:"html_version"`
	Title           string       `json:"title"`
	MetaDescription string       `json:"meta_description"`
	Lang            string       `json:"lang"`
	Headings        map[int]int  `json:"headings"`
	Links           LinkStats    `json:"links"`
	Resources       []ResourceRef `json:"resources"`
	InlineScripts   int          `json:"inline_scripts"`
	InlineStyles    int          `json:"inline_styles"`
	HasForm         bool         `json:"has_form"`
	HasLoginForm    bool         `json:"has_login_form"`
}

// ResourceCount returns how many references of the given type the document makes.
func (d *Document) ResourceCount(t ResourceType) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, r := range d.Resources {
		if r.Type == t {
			n++
		}
	}
	return n
}
