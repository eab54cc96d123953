package renderer

import (
	"bytes"
	"fmt"
	"html/template"
)

var tableTemplate = template.Must(template.New("table").Parse(
	`<table class="striped">` +
		`<thead><tr>{{range .Data.Cols}}<th>{{.}}</th>{{end}}</tr></thead>` +
		`<tbody>{{$last := .Last}}{{$class := .LastRowClass}}` +
		`{{range $i, $row := .Data.Rows}}<tr{{if and (eq $i $last) $class}} class="{{$class}}"{{end}}>` +
		`{{range $row}}<td>{{.}}</td>{{end}}</tr>{{end}}` +
		`</tbody></table>`))

var textTemplate = template.Must(template.New("text").Parse(
	`{{range .}}<div style="padding:0 0 5px">{{.}}</div>{{end}}<div style="clear:both"></div>`))

// renderTable renders data as an HTML table. When lastRowClass is set the
// final body row carries it.
func renderTable(data TableData, lastRowClass string) (string, error) {
	var buf bytes.Buffer
	err := tableTemplate.Execute(&buf, struct {
		Data         TableData
		Last         int
		LastRowClass string
	}{Data: data, Last: len(data.Rows) - 1, LastRowClass: lastRowClass})
	if err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}
	return buf.String(), nil
}

// renderText renders one padded block per line.
func renderText(lines []string) (string, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, lines); err != nil {
		return "", fmt.Errorf("failed to render text: %w", err)
	}
	return buf.String(), nil
}
