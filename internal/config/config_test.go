package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("url: https://x.io\n"))
	require.NoError(t, err)

	require.Equal(t, DefaultTheme, cfg.Theme)
	require.Equal(t, "articles", cfg.Content.ArticlesDir)
	require.Equal(t, "pages", cfg.Content.PagesDir)
	require.Equal(t, "assets", cfg.Content.AssetsDir)
	require.Equal(t, "themes", cfg.Content.ThemesDir)
	require.Equal(t, "archive", cfg.Content.ArchivePath)
	require.Equal(t, DateSourceGit, cfg.Dates.Source)
	require.Equal(t, "www", cfg.Output.Directory)
	require.Equal(t, "origin", cfg.Publish.Remote)
	require.Equal(t, "dev", cfg.Publish.ContentBranch)
	require.Equal(t, "master", cfg.Publish.PublishBranch)
	require.NotNil(t, cfg.CategoryDisplayNames)
	require.Equal(t, filepath.Join("themes", "default", "templates"), cfg.ThemeTemplatesDir())
	require.Equal(t, filepath.Join("themes", "default", "assets"), cfg.ThemeAssetsDir())
}

func TestParseAcceptsJSON(t *testing.T) {
	doc := `{"url": "https://x.io", "theme": "t", "category_display_names": {"tech": "Technology"}}`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "t", cfg.Theme)

	name, ok := cfg.DisplayName("tech")
	require.True(t, ok)
	require.Equal(t, "Technology", name)

	_, ok = cfg.DisplayName("misc")
	require.False(t, ok)
}

func TestParseNormalizesDateSource(t *testing.T) {
	cfg, err := Parse([]byte("url: https://x.io\ndates:\n  source: NONE\n"))
	require.NoError(t, err)
	require.Equal(t, DateSourceNone, cfg.Dates.Source)
}

func TestValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{"missing url", "theme: t\n", "url"},
		{"theme with separator", "url: https://x.io\ntheme: ../evil\n", "theme"},
		{"unknown date source", "url: https://x.io\ndates:\n  source: mtime\n", "dates.source"},
		{"output is working dir", "url: https://x.io\noutput:\n  directory: .\n", "output.directory"},
		{"output contains articles", "url: https://x.io\ncontent:\n  articles_dir: site/articles\noutput:\n  directory: site\n", "output.directory"},
		{"same branches", "url: https://x.io\npublish:\n  content_branch: main\n  publish_branch: main\n", "publish.publish_branch"},
		{"archive escapes", "url: https://x.io\ncontent:\n  archive_path: ../up\n", "content.archive_path"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			be, ok := berrors.As(err)
			require.True(t, ok, "expected classified error, got %v", err)
			require.Equal(t, berrors.CategoryValidation, be.Category)
			require.Equal(t, tc.field, be.Context["field"])
		})
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("OCTOBLOG_TEST_URL", "https://env.example")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: ${OCTOBLOG_TEST_URL}\ntheme: t\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example", cfg.URL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryConfig))
}

func TestInitWritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Example().URL, cfg.URL)
	require.Equal(t, "Technology", cfg.CategoryDisplayNames["tech"])

	require.Error(t, Init(path, false), "existing file must not be overwritten")
	require.NoError(t, Init(path, true))
}
