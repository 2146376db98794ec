package config

import "strings"

// Default values applied when a field is omitted.
const (
	DefaultTheme         = "default"
	DefaultArticlesDir   = "articles"
	DefaultPagesDir      = "pages"
	DefaultAssetsDir     = "assets"
	DefaultThemesDir     = "themes"
	DefaultArchivePath   = "archive"
	DefaultOutputDir     = "www"
	DefaultRemote        = "origin"
	DefaultContentBranch = "dev"
	DefaultPublishBranch = "master"
	DefaultSaveMessage   = "blogctl save"
	DefaultDeployMessage = "blogctl deploy"
)

// ApplyDefaults fills omitted fields. Enumerations are case-folded first so the
// validator only sees canonical values.
func ApplyDefaults(cfg *Config) {
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.CategoryDisplayNames == nil {
		cfg.CategoryDisplayNames = map[string]string{}
	}
	if cfg.Params == nil {
		cfg.Params = map[string]any{}
	}

	c := &cfg.Content
	setDefault(&c.ArticlesDir, DefaultArticlesDir)
	setDefault(&c.PagesDir, DefaultPagesDir)
	setDefault(&c.AssetsDir, DefaultAssetsDir)
	setDefault(&c.ThemesDir, DefaultThemesDir)
	setDefault(&c.ArchivePath, DefaultArchivePath)
	c.ArchivePath = strings.Trim(c.ArchivePath, "/")

	cfg.Dates.Source = DateSource(strings.ToLower(strings.TrimSpace(string(cfg.Dates.Source))))
	if cfg.Dates.Source == "" {
		cfg.Dates.Source = DateSourceGit
	}

	setDefault(&cfg.Output.Directory, DefaultOutputDir)

	p := &cfg.Publish
	setDefault(&p.Remote, DefaultRemote)
	setDefault(&p.ContentBranch, DefaultContentBranch)
	setDefault(&p.PublishBranch, DefaultPublishBranch)
	setDefault(&p.SaveMessage, DefaultSaveMessage)
	setDefault(&p.DeployMessage, DefaultDeployMessage)
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}
