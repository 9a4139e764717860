package templates

// Fragment template - renders the gallery without the base document.
// Static sites embed this markup directly, or fetch it cross-origin from
// /fragment/gallery/{owner}. The stylesheet link is included so the fragment
// is self-sufficient when dropped into an unrelated page.

// GetFragmentTemplate returns the fragment wrapper template.
// Parse together with the gallery templates.
func GetFragmentTemplate() string {
	return fragmentTemplate
}

var fragmentTemplate = `{{define "fragment"}}{{if .IncludeStylesheet}}{{with .Site.Links.Stylesheet}}<link rel="stylesheet" href="{{.}}">
{{end}}{{end}}{{template "gallery" .Gallery}}{{end}}`
