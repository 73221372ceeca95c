package domain

import (
	"bytes"
	"html/template"
	"time"
)

var placeholderTemplate = template.Must(template.New("placeholder").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Coverage report</title>
</head>
<body>
<h1>Coverage report</h1>
<p>No coverage data was recorded for this run.</p>
{{- if .Reason}}
<pre>{{.Reason}}</pre>
{{- end}}
<p>Generated {{.Generated}}</p>
</body>
</html>
`))

// RenderPlaceholderHTML returns the page written to the HTML report
// directory when go test produced no coverage profile.
func RenderPlaceholderHTML(reason string, generated time.Time) ([]byte, error) {
	var buf bytes.Buffer

	err := placeholderTemplate.Execute(&buf, struct {
		Reason    string
		Generated string
	}{
		Reason:    reason,
		Generated: generated.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
