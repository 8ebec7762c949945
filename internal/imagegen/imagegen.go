// Package imagegen draws placeholder cover images for projects that have none.
package imagegen

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"
)

const ContentType = "image/svg+xml"

var palette = []string{
	"#8B5CF6", "#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#EC4899",
}

var coverTemplate = template.Must(template.New("cover").Parse(
	`<svg width="300" height="200" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="grad{{.ID}}" x1="0%" y1="0%" x2="100%" y2="100%">
      <stop offset="0%" stop-color="{{.Color}}" stop-opacity="1"/>
      <stop offset="100%" stop-color="{{.Color}}" stop-opacity="0.5"/>
    </linearGradient>
  </defs>
  <rect width="300" height="200" fill="url(#grad{{.ID}})"/>
  <text x="150" y="100" font-family="Arial, sans-serif" font-size="48" font-weight="bold" text-anchor="middle" fill="white" dominant-baseline="middle">{{.Initials}}</text>
  <text x="150" y="130" font-family="Arial, sans-serif" font-size="16" text-anchor="middle" fill="white" opacity="0.8">{{.Name}}</text>
</svg>
`))

type cover struct {
	ID       int64
	Color    string
	Initials string
	Name     string
}

// ColorFor picks the palette entry for a project id.
func ColorFor(id int64) string {
	i := id % int64(len(palette))
	if i < 0 {
		i = -i
	}
	return palette[i]
}

// Initials returns the first two letters of the name, upper-cased.
func Initials(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	end := 0
	for i := 0; i < 2 && end < len(name); i++ {
		_, size := utf8.DecodeRuneInString(name[end:])
		end += size
	}
	return strings.ToUpper(name[:end])
}

// ProjectCover renders the SVG cover for a project.
func ProjectCover(id int64, name string) ([]byte, error) {
	var buf bytes.Buffer
	err := coverTemplate.Execute(&buf, cover{
		ID:       id,
		Color:    ColorFor(id),
		Initials: Initials(name),
		Name:     name,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
