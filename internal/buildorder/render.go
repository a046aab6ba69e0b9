package buildorder

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Renderer serializes resolved lines to bytes.
type Renderer interface {
	Render(lines []Line) ([]byte, error)
}

// TextRenderer writes one line per entry in the cleaned build-order format.
type TextRenderer struct{}

func (r *TextRenderer) Render(lines []Line) ([]byte, error) {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// JSONRenderer writes the lines as indented JSON for tooling.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.MarshalIndent(lines, "", "  ")
}

// RendererFor maps a format name to its Renderer. An empty format is text.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
}
