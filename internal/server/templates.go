package server

import "html/template"

var listingTmpl = template.Must(template.New("listing").Parse(`<!doctype html>
<html lang="ja">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Pages}}<ul>
{{range .Pages}}<li><a href="{{.}}">{{.}}</a></li>
{{end}}</ul>{{else}}<p>no pages</p>{{end}}
</body>
</html>
`))

// searchFormTmpl replaces the inside of the search box so the query is
// submitted with the open series kept.
var searchFormTmpl = template.Must(template.New("search").Parse(`<form method="get" action="">` +
	`<input type="text" id="{{.ID}}" name="q" value="{{.Query}}" placeholder="{{.Placeholder}}" />` +
	`{{range .Open}}<input type="hidden" name="open" value="{{.}}" />{{end}}` +
	`</form>`))

type listingData struct {
	Title string
	Pages []string
}

type searchFormData struct {
	ID          string
	Query       string
	Placeholder string
	Open        []string
}
