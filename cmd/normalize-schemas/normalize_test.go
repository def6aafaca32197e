package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telkomindonesia/swagger-fixup/internal/schemaname"
)

func copyFixture(t *testing.T, src string) string {
	t.Helper()
	b, err := os.ReadFile(src)
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return p
}

func backups(t *testing.T, p string) []string {
	t.Helper()
	m, err := filepath.Glob(p + ".backup.*")
	require.NoError(t, err)
	return m
}

func TestNormalizeFile(t *testing.T) {
	p := copyFixture(t, "./testdata/swagger.json")
	original, err := os.ReadFile(p)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, normalizeFile(context.Background(), &out, options{path: p}))

	report := out.String()
	assert.Contains(t, report, "-> TransactionsPageResponse [paged-response]")
	assert.Contains(t, report, "-> CustomerPaymentMethodsPageResponse [paged-response]")
	assert.Contains(t, report, "-> KeyValuePair2 [marker-strip]")
	assert.Contains(t, report, "Normalized 3 schema names, rewrote 6 references")

	b := backups(t, p)
	require.Len(t, b, 1)
	saved, err := os.ReadFile(b[0])
	require.NoError(t, err)
	assert.Equal(t, original, saved, "backup should hold the input bytes")

	updated, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(updated), `"$ref": "#/components/schemas/TransactionsPageResponse"`)
	assert.Contains(t, string(updated), `"$ref": "errors.json#/components/schemas/KeyValuePair`+"`2\"",
		"external references should be left alone")

	t.Run("second run is a no-op", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, normalizeFile(context.Background(), &out, options{path: p}))
		assert.Contains(t, out.String(), "No schemas need renaming")

		again, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, updated, again)
		assert.Len(t, backups(t, p), 1)
	})
}

func TestNormalizeFileDryRun(t *testing.T) {
	p := copyFixture(t, "./testdata/swagger.json")
	original, err := os.ReadFile(p)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, normalizeFile(context.Background(), &out, options{path: p, dryRun: true}))
	assert.Contains(t, out.String(), "Dry run: would rename 3 schemas")
	assert.Contains(t, out.String(), "... (invalid-characters)", "long names should be truncated")

	after, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, original, after)
	assert.Empty(t, backups(t, p))
}

func TestNormalizeFileCollision(t *testing.T) {
	p := filepath.Join(t.TempDir(), "swagger.json")
	in := "{\"definitions\": {\"KeyValuePair2\": {}, \"KeyValuePair`2\": {}}}"
	require.NoError(t, os.WriteFile(p, []byte(in), 0o644))

	err := normalizeFile(context.Background(), &bytes.Buffer{}, options{path: p})
	var cerr *schemaname.CollisionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "KeyValuePair2", cerr.Derived)

	after, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, in, string(after))
	assert.Empty(t, backups(t, p))
}

func TestNormalizeFileConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "swagger.json")
	in := "{\"components\": {\"schemas\": {\"Api.Page`1[[Api.Invoices.List.ListInvoicesResponse, Api]]\": {}}}}"
	require.NoError(t, os.WriteFile(p, []byte(in), 0o644))
	cfg := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("domainKeywords: [Invoices]\nstripTokens: [Response, List]\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, normalizeFile(context.Background(), &out, options{path: p, config: cfg}))
	assert.Contains(t, out.String(), "-> InvoicesPageResponse")

	t.Run("missing config", func(t *testing.T) {
		err := normalizeFile(context.Background(), &bytes.Buffer{}, options{path: p, config: filepath.Join(dir, "missing.yml")})
		require.Error(t, err)
	})
}

func TestNormalizeFileLongName(t *testing.T) {
	name := "Contracts.Page`1[[" + strings.Repeat("Ns.Deep.", 130) + "Resp, Asm, Version=1.0.0.0]]"
	p := filepath.Join(t.TempDir(), "swagger.json")
	in := `{"components": {"schemas": {"` + name + `": {"description": "a\/b"}}}}`
	require.NoError(t, os.WriteFile(p, []byte(in), 0o644))

	var out bytes.Buffer
	require.NoError(t, normalizeFile(context.Background(), &out, options{path: p}))
	assert.Contains(t, out.String(), "-> RespPage [paged-response]")

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"components\": {\n    \"schemas\": {\n      \"RespPage\": {\n        \"description\": \"a/b\"\n      }\n    }\n  }\n}", string(b))
}

func TestNormalizeFileMissing(t *testing.T) {
	err := normalizeFile(context.Background(), &bytes.Buffer{}, options{path: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}

func TestCommandArgs(t *testing.T) {
	cmd := newCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())

	p := copyFixture(t, "./testdata/swagger.json")
	var out bytes.Buffer
	cmd = newCommand()
	cmd.SetArgs([]string{p, "--dry-run"})
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "Finding schemas to rename..."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
}
