package config

import (
	"path/filepath"
	"strings"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.URL) == "" {
		return berrors.ValidationFailed("url", "site base URL is required")
	}
	if strings.ContainsAny(cfg.Theme, `/\`) || cfg.Theme == "." || cfg.Theme == ".." {
		return berrors.ValidationFailed("theme", "theme must be a directory name under the themes directory")
	}
	if a := filepath.Clean(cfg.Content.ArchivePath); a == "." || strings.HasPrefix(a, "..") || filepath.IsAbs(a) {
		return berrors.ValidationFailed("content.archive_path", "archive path must be a relative subdirectory")
	}
	switch cfg.Dates.Source {
	case DateSourceGit, DateSourceNone:
	default:
		return berrors.ValidationFailed("dates.source", "unsupported date source "+string(cfg.Dates.Source)+" (expected git or none)")
	}
	if cfg.Publish.ContentBranch == cfg.Publish.PublishBranch {
		return berrors.ValidationFailed("publish.publish_branch", "content and publish branches must differ")
	}
	return ValidateOutputDir(cfg.Output.Directory, cfg)
}

// ValidateOutputDir rejects output directories whose clearing would destroy
// the working tree or any content tree.
func ValidateOutputDir(dir string, cfg *Config) error {
	clean := filepath.Clean(dir)
	if clean == "." || clean == string(filepath.Separator) || clean == ".." {
		return berrors.ValidationFailed("output.directory", "output directory must be a dedicated subdirectory")
	}
	out, err := filepath.Abs(clean)
	if err != nil {
		return berrors.ValidationFailed("output.directory", err.Error())
	}
	for _, content := range []string{cfg.Content.ArticlesDir, cfg.Content.PagesDir, cfg.Content.AssetsDir, cfg.Content.ThemesDir} {
		abs, err := filepath.Abs(content)
		if err != nil {
			continue
		}
		if isWithin(abs, out) {
			return berrors.ValidationFailed("output.directory", "output directory must not contain "+content)
		}
	}
	return nil
}

// isWithin reports whether path equals dir or lies beneath it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
