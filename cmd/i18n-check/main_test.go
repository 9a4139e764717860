package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzeProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "templates", "x.go"), "package templates\nvar X = `{{i18n \"gallery.empty\"}} {{i18n \"nope.missing\"}}`\n")
	writeFile(t, filepath.Join(root, "handlers.go"), "package main\nvar _ = config.I18n(\"page.usage_body\")\n")
	writeFile(t, filepath.Join(root, "config", "i18n", "de.json"), `{"gallery.empty": "Keine Sammlerstücke.", "bogus.key": "x"}`)
	writeFile(t, filepath.Join(root, "_examples", "skip.go"), "package x\nvar _ = `{{i18n \"skipped.key\"}}`\n")

	report, err := analyzeProject(root)
	require.NoError(t, err)

	assert.Contains(t, report.UsedKeys, "gallery.empty")
	assert.Contains(t, report.UsedKeys, "page.usage_body")
	assert.NotContains(t, report.UsedKeys, "skipped.key")
	assert.Equal(t, 1, report.Errors())

	var sawUnknown bool
	for _, f := range report.Findings {
		if f.Severity == SeverityError {
			assert.Equal(t, "nope.missing", f.Key)
		}
		if f.Severity == SeverityWarning && f.Key == "bogus.key" {
			sawUnknown = true
		}
	}
	assert.True(t, sawUnknown)
}

func TestCommandFailsOnUndefinedKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\nvar _ = `{{i18n \"nope.missing\"}}`\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--path", root})
	assert.Error(t, cmd.Execute())
	assert.Contains(t, out.String(), "[error] nope.missing")
}

func TestRepositoryTemplatesUseKnownKeys(t *testing.T) {
	report, err := analyzeProject(filepath.Join("..", ".."))
	require.NoError(t, err)
	for _, f := range report.Findings {
		assert.NotEqual(t, SeverityError, f.Severity, "%s: %s (%s)", f.Key, f.Message, f.File)
	}
}
