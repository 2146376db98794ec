package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Example returns the configuration written by Init.
func Example() Config {
	return Config{
		URL:         "https://example.github.io",
		Title:       "My Blog",
		Description: "Notes and articles",
		Theme:       DefaultTheme,
		CategoryDisplayNames: map[string]string{
			".":    "Archive",
			"tech": "Technology",
		},
		Params: map[string]any{
			"author": "Jane Doe",
		},
		Content: ContentConfig{
			ArticlesDir: DefaultArticlesDir,
			PagesDir:    DefaultPagesDir,
			AssetsDir:   DefaultAssetsDir,
			ThemesDir:   DefaultThemesDir,
			ArchivePath: DefaultArchivePath,
		},
		Dates:  DatesConfig{Source: DateSourceGit},
		Output: OutputConfig{Directory: DefaultOutputDir},
		Publish: PublishConfig{
			Remote:        DefaultRemote,
			ContentBranch: DefaultContentBranch,
			PublishBranch: DefaultPublishBranch,
		},
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Example()
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- configuration carries no secrets; secrets belong in .env
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
