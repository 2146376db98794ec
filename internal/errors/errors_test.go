package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlogError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BlogError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
		{
			name:     "error naming its entity",
			err:      TemplateFailed("articles/a.md", "article.template.html", fmt.Errorf("boom")),
			expected: "template (fatal): template rendering failed [articles/a.md]: boom",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestBlogError_WithContext(t *testing.T) {
	err := New(CategoryGit, SeverityWarning, "push failed").
		WithContext("branch", "master").
		WithContext("remote", "origin")

	require.Equal(t, "master", err.Context["branch"])
	require.Equal(t, "origin", err.Context["remote"])
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	wrapped := fmt.Errorf("outer: %w", ReadFailed("a.md", fmt.Errorf("denied")))
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match git category", configErr, CategoryGit, false},
		{"wrapped filesystem error is found through the chain", wrapped, CategoryFileSystem, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, IsCategory(test.err, test.category))
		})
	}
	require.Equal(t, CategoryInternal, GetCategory(standardErr))
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/config.yaml")
		require.Equal(t, CategoryConfig, err.Category)
		require.Equal(t, SeverityFatal, err.Severity)
		require.Equal(t, "/path/to/config.yaml", err.Context["path"])
	})

	t.Run("WriteFailed", func(t *testing.T) {
		cause := fmt.Errorf("disk full")
		err := WriteFailed("www/index.html", cause)
		require.Equal(t, CategoryFileSystem, err.Category)
		require.True(t, stdErrors.Is(err, cause))
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("theme", "must not be empty")
		require.Equal(t, CategoryValidation, err.Category)
		require.Equal(t, "theme", err.Context["field"])
		require.Equal(t, "must not be empty", err.Context["reason"])
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	require.Equal(t, 0, a.ExitCodeFor(nil))
	require.Equal(t, 1, a.ExitCodeFor(fmt.Errorf("plain")))
	require.Equal(t, 7, a.ExitCodeFor(ConfigNotFound("c.yaml")))
	require.Equal(t, 2, a.ExitCodeFor(ValidationFailed("url", "required")))
	require.Equal(t, 8, a.ExitCodeFor(GitCommandFailed([]string{"push"}, fmt.Errorf("rejected"))))
	require.Equal(t, 11, a.ExitCodeFor(fmt.Errorf("generate: %w", TemplateFailed("p.md", "page.template.html", fmt.Errorf("x")))))

	require.Equal(t, "configuration file not found: c.yaml", a.FormatError(ConfigNotFound("c.yaml")))
	require.Equal(t, "filesystem: read failed: a.md", a.FormatError(ReadFailed("a.md", fmt.Errorf("denied"))))
	require.Equal(t, "Error: plain", a.FormatError(fmt.Errorf("plain")))

	verbose := NewCLIErrorAdapter(true, nil)
	require.Equal(t, "filesystem (fatal): read failed [a.md]: denied", verbose.FormatError(ReadFailed("a.md", fmt.Errorf("denied"))))
}
