package puzzle

import "strings"

// pageURLs is the fixed navigation table for the known pages.
var pageURLs = map[string]string{
	"execution": "pages/execution.html",
	"product":   "pages/product.html",
	"analysis":  "pages/analysis.html",
	"tools":     "pages/tools.html",
	"ideas":     "pages/ideas.html",
	"learning":  "pages/learning.html",
	"about":     "pages/about.html",
	"projects":  "pages/projects.html",
	"contact":   "pages/contact.html",
}

// Links resolves a pageRef to the URL navigation should open.
type Links struct {
	// BaseURL is prefixed to every resolved path. Empty keeps paths relative.
	BaseURL string
}

// Resolve maps pageRef through the fixed table, falling back to pages/<pageRef>.html.
func (l Links) Resolve(pageRef string) string {
	path, ok := pageURLs[pageRef]
	if !ok {
		path = "pages/" + pageRef + ".html"
	}
	if l.BaseURL == "" {
		return path
	}
	return strings.TrimRight(l.BaseURL, "/") + "/" + path
}
