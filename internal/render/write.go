package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	berrors "github.com/lucawellmeier/octoblog/internal/errors"
)

// Write stores html at rel below outputDir, creating parent directories and
// replacing any existing file. It returns the full path written.
func Write(outputDir, rel, html string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", berrors.WriteFailed(rel, fmt.Errorf("output path escapes %s", outputDir))
	}
	full := filepath.Join(outputDir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", berrors.WriteFailed(full, err)
	}
	// #nosec G306 -- generated site files are meant to be world-readable
	if err := os.WriteFile(full, []byte(html), 0o644); err != nil {
		return "", berrors.WriteFailed(full, err)
	}
	return full, nil
}
