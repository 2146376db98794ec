package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderHeadingAndParagraph(t *testing.T) {
	html, err := New().Render([]byte("# Hello\n\nWorld."))
	require.NoError(t, err)
	require.Contains(t, html, `<h1 id="hello">Hello</h1>`)
	require.Contains(t, html, "<p>World.</p>")
}

func TestRenderGFMTable(t *testing.T) {
	html, err := New().Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, html, "<table>")
}

func TestRenderPreservesTemplateActions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"quoted argument", `Footer: {{template "partials/footer.html" .}}`, `<p>Footer: {{template "partials/footer.html" .}}</p>`},
		{"emphasis-like characters", `{{ .Site.Params.author_name }}`, `<p>{{ .Site.Params.author_name }}</p>`},
		{"inside code span", "`{{ .Site.URL }}`", "<code>{{ .Site.URL }}</code>"},
		{"spanning lines", "{{ range .Articles }}\n{{ .Title }}\n{{ end }}", "{{ range .Articles }}\n{{ .Title }}\n{{ end }}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			html, err := New().Render([]byte(tc.src))
			require.NoError(t, err)
			require.Contains(t, html, tc.want)
			require.NotContains(t, html, placeholderPrefix)
		})
	}
}

func TestProtectActionsRoundTrip(t *testing.T) {
	src := []byte(`a {{x}} b {{y "z"}} c`)
	protected, actions := protectActions(src)
	require.Equal(t, []string{"{{x}}", `{{y "z"}}`}, actions)
	require.NotContains(t, string(protected), "{{")
	require.Equal(t, string(src), restoreActions(string(protected), actions))
}
