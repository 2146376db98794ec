package config

// Config represents the site configuration consumed by generation and publishing.
type Config struct {
	URL                  string            `yaml:"url"`
	Title                string            `yaml:"title,omitempty"`
	Description          string            `yaml:"description,omitempty"`
	Theme                string            `yaml:"theme"`
	CategoryDisplayNames map[string]string `yaml:"category_display_names,omitempty"`
	Params               map[string]any    `yaml:"params,omitempty"`

	Content ContentConfig `yaml:"content,omitempty"`
	Dates   DatesConfig   `yaml:"dates,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Publish PublishConfig `yaml:"publish,omitempty"`
}

// ContentConfig locates the input trees, relative to the working directory.
type ContentConfig struct {
	ArticlesDir string `yaml:"articles_dir,omitempty"`
	PagesDir    string `yaml:"pages_dir,omitempty"`
	AssetsDir   string `yaml:"assets_dir,omitempty"`
	ThemesDir   string `yaml:"themes_dir,omitempty"`
	// ArchivePath is where the root category index is written (<archive_path>/index.html).
	ArchivePath string `yaml:"archive_path,omitempty"`
}

// DateSource selects how publication / last update dates are derived.
type DateSource string

const (
	DateSourceGit  DateSource = "git"
	DateSourceNone DateSource = "none"
)

// DatesConfig configures date derivation.
type DatesConfig struct {
	Source DateSource `yaml:"source,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

// PublishConfig names the branches and messages used by save and publish.
type PublishConfig struct {
	Remote        string `yaml:"remote,omitempty"`
	ContentBranch string `yaml:"content_branch,omitempty"`
	PublishBranch string `yaml:"publish_branch,omitempty"`
	SaveMessage   string `yaml:"save_message,omitempty"`
	DeployMessage string `yaml:"deploy_message,omitempty"`
}

// ThemeTemplatesDir returns themes/<theme>/templates.
func (c *Config) ThemeTemplatesDir() string {
	return joinDir(c.Content.ThemesDir, c.Theme, "templates")
}

// ThemeAssetsDir returns themes/<theme>/assets.
func (c *Config) ThemeAssetsDir() string {
	return joinDir(c.Content.ThemesDir, c.Theme, "assets")
}

// DisplayName returns the configured display name for a category, if any.
func (c *Config) DisplayName(category string) (string, bool) {
	name, ok := c.CategoryDisplayNames[category]
	return name, ok
}
