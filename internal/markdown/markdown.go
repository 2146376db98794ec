// Package markdown renders markdown bodies to HTML with goldmark.
//
// Template actions ({{ ... }}) embedded in a body are carried through rendering
// verbatim so a later template pass can evaluate them; goldmark would otherwise
// escape their quotes or split them across inline nodes.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts a markdown body into an HTML fragment.
type Renderer interface {
	Render(body []byte) (string, error)
}

// Goldmark is the default Renderer: GitHub flavoured markdown, heading IDs,
// raw HTML passed through.
type Goldmark struct {
	md goldmark.Markdown
}

// New creates a goldmark-backed renderer.
func New() *Goldmark {
	return &Goldmark{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)}
}

// Render converts body to HTML.
func (g *Goldmark) Render(body []byte) (string, error) {
	protected, actions := protectActions(body)
	var buf bytes.Buffer
	if err := g.md.Convert(protected, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return restoreActions(buf.String(), actions), nil
}

var actionPattern = regexp.MustCompile(`(?s)\{\{.*?\}\}`)

const (
	placeholderPrefix = "OCTOBLOGACTION"
	placeholderSuffix = "END"
)

// protectActions swaps every template action for an inert alphanumeric token.
func protectActions(body []byte) ([]byte, []string) {
	var actions []string
	out := actionPattern.ReplaceAllFunc(body, func(m []byte) []byte {
		token := placeholder(len(actions))
		actions = append(actions, string(m))
		return []byte(token)
	})
	return out, actions
}

func restoreActions(rendered string, actions []string) string {
	if len(actions) == 0 {
		return rendered
	}
	pairs := make([]string, 0, 2*len(actions))
	for i, a := range actions {
		pairs = append(pairs, placeholder(i), a)
	}
	return strings.NewReplacer(pairs...).Replace(rendered)
}

func placeholder(i int) string {
	return placeholderPrefix + strconv.Itoa(i) + placeholderSuffix
}
