// Package render turns indexed content into HTML through the theme templates.
package render

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lucawellmeier/octoblog/internal/config"
	"github.com/lucawellmeier/octoblog/internal/content"
)

// Context is the read-only namespace shared by every render of one run.
type Context struct {
	Site       *config.Config
	Articles   []content.Article
	Categories []content.Category
	Pages      []content.Page
}

// BuildContext assembles the render context. It performs no I/O.
func BuildContext(cfg *config.Config, idx *content.Index) *Context {
	return &Context{
		Site:       cfg,
		Articles:   idx.Articles,
		Categories: idx.Categories,
		Pages:      idx.Pages,
	}
}

// Scope is the value templates execute against.
type Scope struct {
	Site       *config.Config
	Articles   []content.Article
	Categories []content.Category
	Pages      []content.Page
	// This is the entity being rendered; nil when expanding embedded actions.
	This any
}

// HomeEntity is bound to This when rendering the home page.
type HomeEntity struct {
	ActiveMenuItem string
}

func (c *Context) scope(this any) Scope {
	return Scope{
		Site:       c.Site,
		Articles:   c.Articles,
		Categories: c.Categories,
		Pages:      c.Pages,
		This:       this,
	}
}

// Category returns the category with the given name.
func (c *Context) Category(name string) (content.Category, error) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, nil
		}
	}
	return content.Category{}, fmt.Errorf("unknown category %q", name)
}

// ArticlesIn returns the articles directly inside the category, in index order.
func (c *Context) ArticlesIn(name string) []content.Article {
	var out []content.Article
	for _, a := range c.Articles {
		if a.Category == name {
			out = append(out, a)
		}
	}
	return out
}

// Subcategories returns the direct children of a category.
func (c *Context) Subcategories(name string) []content.Category {
	var out []content.Category
	for _, cat := range c.Categories {
		if cat.Name != "." && cat.Name != name && path.Dir(cat.Name) == name {
			out = append(out, cat)
		}
	}
	return out
}

// Funcs returns the helper functions available to every template.
func (c *Context) Funcs() template.FuncMap {
	caser := cases.Title(language.English)
	return template.FuncMap{
		"category":      c.Category,
		"articlesIn":    c.ArticlesIn,
		"subcategories": c.Subcategories,
		"newest":        content.SortByPublication,
		"oldest":        oldestFirst,
		"limit":         limit,
		"absURL":        func(p string) string { return content.JoinURL(c.Site.URL, p) },
		"titleCase":     caser.String,
		"lower":         strings.ToLower,
		"replaceAll":    strings.ReplaceAll,
		"isoDate":       isoDate,
	}
}

// oldestFirst orders dated articles oldest first, undated ones last.
func oldestFirst(articles []content.Article) []content.Article {
	out := content.SortByName(articles)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublicationDate, out[j].PublicationDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(b.Time)
		}
	})
	return out
}

func limit(n int, articles []content.Article) []content.Article {
	if n < 0 {
		n = 0
	}
	if n >= len(articles) {
		return articles
	}
	return articles[:n]
}

// isoDate formats the calendar day of ts, or "" when the date is unknown.
func isoDate(ts *content.Timestamp) string {
	if ts == nil {
		return ""
	}
	return ts.Format("2006-01-02")
}
