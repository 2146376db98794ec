package content

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/lucawellmeier/octoblog/internal/config"
	"github.com/lucawellmeier/octoblog/internal/dates"
	berrors "github.com/lucawellmeier/octoblog/internal/errors"
	"github.com/lucawellmeier/octoblog/internal/frontmatter"
	"github.com/lucawellmeier/octoblog/internal/htmlmeta"
	"github.com/lucawellmeier/octoblog/internal/logfields"
	"github.com/lucawellmeier/octoblog/internal/markdown"
)

// Extractor derives records from source files.
type Extractor struct {
	cfg   *config.Config
	md    markdown.Renderer
	dates dates.Finder
}

// NewExtractor returns an extractor. A nil finder disables date derivation.
func NewExtractor(cfg *config.Config, md markdown.Renderer, finder dates.Finder) *Extractor {
	if finder == nil {
		finder = dates.None{}
	}
	return &Extractor{cfg: cfg, md: md, dates: finder}
}

// Article extracts the record for an article at path (as walked from the
// articles root). The output path keeps the directory structure below the root.
func (e *Extractor) Article(sourcePath string) (Article, error) {
	doc, err := e.document(sourcePath)
	if err != nil {
		return Article{}, err
	}
	rel := relSlash(e.cfg.Content.ArticlesDir, sourcePath)
	doc.ActiveMenuItem = MenuHome
	doc.OutputPath = htmlPath(rel)
	doc.Link = JoinURL(e.cfg.URL, doc.OutputPath)
	return Article{Document: doc, Category: path.Dir(rel)}, nil
}

// Page extracts the record for a page. Only the basename survives in the
// output path.
func (e *Extractor) Page(sourcePath string) (Page, error) {
	doc, err := e.document(sourcePath)
	if err != nil {
		return Page{}, err
	}
	doc.ActiveMenuItem = doc.Name
	doc.OutputPath = htmlPath(filepath.Base(sourcePath))
	doc.Link = JoinURL(e.cfg.URL, doc.OutputPath)
	return Page{Document: doc}, nil
}

// Category builds the record for the directory rel (slash form, "." for the
// articles root).
func (e *Extractor) Category(rel string) Category {
	display, ok := e.cfg.DisplayName(rel)
	if !ok {
		display = path.Base(rel)
		if rel == "." {
			display = filepath.Base(filepath.Clean(e.cfg.Content.ArticlesDir))
		}
	}
	out := rel + "/index.html"
	if rel == "." {
		out = e.cfg.Content.ArchivePath + "/index.html"
	}
	return Category{
		Name:           rel,
		DisplayName:    display,
		ActiveMenuItem: MenuArchives,
		OutputPath:     out,
		Link:           JoinURL(e.cfg.URL, out),
	}
}

func (e *Extractor) document(sourcePath string) (Document, error) {
	raw, err := os.ReadFile(sourcePath) // #nosec G304 -- paths come from the content walk
	if err != nil {
		return Document{}, berrors.ReadFailed(sourcePath, err)
	}
	params, body, err := frontmatter.Parse(raw)
	if err != nil {
		return Document{}, berrors.MarkdownFailed(sourcePath, err)
	}
	html, err := e.md.Render(body)
	if err != nil {
		return Document{}, berrors.MarkdownFailed(sourcePath, err)
	}
	summary, err := htmlmeta.Find(html)
	if err != nil {
		return Document{}, berrors.MarkdownFailed(sourcePath, err)
	}

	published, updated, err := e.dates.Find(sourcePath)
	if err != nil {
		slog.Warn("Could not determine dates", logfields.Path(sourcePath), logfields.Error(err))
		published, updated = nil, nil
	}

	return Document{
		Name:            filepath.ToSlash(sourcePath),
		Content:         html,
		Title:           summary.Headline,
		Description:     summary.FirstParagraph,
		PublicationDate: NewTimestamp(published),
		LastUpdate:      NewTimestamp(updated),
		Params:          params,
	}, nil
}

// relSlash returns target relative to root in slash form, or target itself
// when no relative path exists.
func relSlash(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
