package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
)

// Template names a theme must provide.
const (
	HomeTemplate     = "home.template.html"
	CategoryTemplate = "index.template.html"
	ArticleTemplate  = "article.template.html"
	PageTemplate     = "page.template.html"
)

// RequiredTemplates lists the templates checked when an engine is created.
var RequiredTemplates = []string{HomeTemplate, CategoryTemplate, ArticleTemplate, PageTemplate}

// ErrMissingTemplate is returned when a theme lacks a required template.
var ErrMissingTemplate = errors.New("template not found")

// Engine holds the parsed theme templates bound to one render context.
type Engine struct {
	set *template.Template
	ctx *Context
}

// NewEngine parses every file below templatesDir. Templates are named by
// their slash path relative to that directory.
func NewEngine(templatesDir string, ctx *Context) (*Engine, error) {
	set := template.New("").Funcs(ctx.Funcs()).Option("missingkey=error")

	err := filepath.WalkDir(templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return berrors.WalkFailed(p, err)
		}
		if strings.HasPrefix(d.Name(), ".") && p != templatesDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(templatesDir, p)
		if err != nil {
			return berrors.WalkFailed(p, err)
		}
		name := filepath.ToSlash(rel)
		src, err := os.ReadFile(p) // #nosec G304 -- theme files are user-selected input
		if err != nil {
			return berrors.ReadFailed(p, err)
		}
		if _, err := set.New(name).Parse(string(src)); err != nil {
			return berrors.TemplateFailed("theme", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range RequiredTemplates {
		if set.Lookup(name) == nil {
			return nil, berrors.TemplateFailed("theme", name,
				fmt.Errorf("%w: %s in %s", ErrMissingTemplate, name, templatesDir))
		}
	}
	return &Engine{set: set, ctx: ctx}, nil
}

// RenderOnce executes the named template with This bound to entity.
func (e *Engine) RenderOnce(name, entity string, this any) (string, error) {
	var buf bytes.Buffer
	if err := e.set.ExecuteTemplate(&buf, name, e.ctx.scope(this)); err != nil {
		return "", berrors.TemplateFailed(entity, name, err)
	}
	return buf.String(), nil
}

// RenderTwoPass renders the named template and then expands the template
// actions left in its output, such as those embedded in markdown bodies.
func (e *Engine) RenderTwoPass(name, entity string, this any) (string, error) {
	first, err := e.RenderOnce(name, entity, this)
	if err != nil {
		return "", err
	}
	return e.Expand(entity, first)
}

// Expand parses src as a template sharing the theme's definitions and
// executes it without an entity.
func (e *Engine) Expand(entity, src string) (string, error) {
	clone, err := e.set.Clone()
	if err != nil {
		return "", berrors.InternalError("clone template set", err)
	}
	name := "expand:" + entity
	tpl, err := clone.New(name).Parse(src)
	if err != nil {
		return "", berrors.TemplateFailed(entity, name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, e.ctx.scope(nil)); err != nil {
		return "", berrors.TemplateFailed(entity, name, err)
	}
	return buf.String(), nil
}
