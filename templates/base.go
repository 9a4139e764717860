package templates

// Base template - shared structure for full HTML pages.
// Page templates define the "content" block.

func GetBaseTemplates() string {
	return baseTemplate + footerTemplate
}

var baseTemplate = `{{define "base"}}{{$site := .Site}}<!DOCTYPE html>
<html lang="en"{{if .ThemeClass}} class="{{.ThemeClass}}"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="theme-color" content="{{$site.Meta.ThemeColor.Light}}" media="(prefers-color-scheme: light)">
  <meta name="theme-color" content="{{$site.Meta.ThemeColor.Dark}}" media="(prefers-color-scheme: dark)">
  <meta name="description" content="{{$site.GetDescription .PageDescription}}">
  <meta name="referrer" content="no-referrer">
  <title>{{$site.FormatTitle .Title}}</title>
  {{with $site.Links.Favicon}}<link rel="icon" href="{{.}}">{{end}}
  {{range $site.Links.Preconnect}}<link rel="preconnect" href="{{.}}">
  {{end}}{{with $site.Links.Stylesheet}}<link rel="stylesheet" href="{{.}}">{{end}}
</head>
<body id="top">
  <a href="#main-content" class="skip-link">{{i18n "a11y.skip_to_main"}}</a>
  <main id="main-content" class="container">
    <h1>{{.Title}}</h1>
    {{template "content" .}}
  </main>
  {{template "footer" .}}
</body>
</html>{{end}}
`

var footerTemplate = `{{define "footer"}}
<footer>
<a href="#top" class="scroll-top" aria-label="Scroll to top">↑</a>
</footer>
{{end}}`
