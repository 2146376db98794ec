// Package content indexes the article and page trees into the records the
// templates are rendered from.
package content

import (
	"path/filepath"
	"strings"
)

// Active menu tags exposed to templates.
const (
	MenuHome     = "BLOG_HOME"
	MenuArchives = "BLOG_ARCHIVES"
)

// HomeOutput is the output path of the home page.
const HomeOutput = "index.html"

// Document holds the fields shared by articles and pages.
type Document struct {
	Name            string
	Content         string
	Title           string
	Description     string
	ActiveMenuItem  string
	PublicationDate *Timestamp
	LastUpdate      *Timestamp
	OutputPath      string
	Link            string
	// Params carries the optional frontmatter of the source file.
	Params map[string]any
}

// Draft reports whether the frontmatter marks the document as a draft.
func (d Document) Draft() bool {
	draft, _ := d.Params["draft"].(bool)
	return draft
}

// Article is a markdown file below the articles root.
type Article struct {
	Document
	// Category is the name of the directory holding the article.
	Category string
}

// Page is a markdown file below the pages root. Pages are flattened in output.
type Page struct {
	Document
}

// Category is a directory below (or equal to) the articles root.
type Category struct {
	Name           string
	DisplayName    string
	ActiveMenuItem string
	OutputPath     string
	Link           string
}

// Index is the result of one indexing run.
type Index struct {
	Articles   []Article
	Categories []Category
	Pages      []Page
}

// JoinURL joins a base URL and a relative path with exactly one slash.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkd":      true,
}

// IsMarkdown reports whether name has a markdown extension.
func IsMarkdown(name string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(name))]
}

func htmlPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
}
