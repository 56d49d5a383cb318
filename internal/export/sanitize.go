package export

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// newPolicy allows the elements the HTML writer emits and the class names the
// stylesheet targets. Links may use http, https, mailto and tel; images may also
// be inline data URIs.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6", "p", "ul", "li",
		"strong", "em", "code", "br", "hr", "div")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^resume-[a-z0-9-]+$`)).Globally()

	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)

	p.AllowImages()
	p.AllowDataURIImages()
	return p
}
