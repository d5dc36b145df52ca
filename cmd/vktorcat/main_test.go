package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shevron/vktor/internal/config"
)

func writeNDJSON(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.ndjson")
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRunMaxDepthRejectsOverDeepDocument(t *testing.T) {
	path := writeNDJSON(t, `[[[[]]]]`)
	cfg := config.Default()
	cfg.MaxDepth = 3

	var out bytes.Buffer
	err := run(cfg, path, false, false, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "maximum nesting depth")
}

func TestRunMaxDepthAllowsShallowDocument(t *testing.T) {
	path := writeNDJSON(t, `[[[]]]`)
	cfg := config.Default()
	cfg.MaxDepth = 3

	var out bytes.Buffer
	require.NoError(t, run(cfg, path, false, false, &out))
	require.Contains(t, out.String(), "array-start")
	require.Contains(t, out.String(), "array-end")
}

func TestRunDedupSkipsRepeatedDocument(t *testing.T) {
	path := writeNDJSON(t, `{"a":1}`, `{"a":1}`, `{"a":2}`)
	cfg := config.Default()
	cfg.Dedup = true

	var out bytes.Buffer
	require.NoError(t, run(cfg, path, false, false, &out))

	// Each distinct document produces an ObjectStart line; the repeated
	// {"a":1} line should only contribute one.
	require.Equal(t, 2, bytes.Count(out.Bytes(), []byte("object-start")))
}

func TestRunWithoutDedupReprintsRepeatedDocument(t *testing.T) {
	path := writeNDJSON(t, `{"a":1}`, `{"a":1}`)
	cfg := config.Default()
	cfg.Dedup = false

	var out bytes.Buffer
	require.NoError(t, run(cfg, path, false, false, &out))
	require.Equal(t, 2, bytes.Count(out.Bytes(), []byte("object-start")))
}

func TestRunInternKeysPrintsKeyValues(t *testing.T) {
	path := writeNDJSON(t, `{"repeated":1}`, `{"repeated":2}`)
	cfg := config.Default()

	var out bytes.Buffer
	require.NoError(t, run(cfg, path, true, false, &out))
	require.Equal(t, 2, bytes.Count(out.Bytes(), []byte(`"repeated"`)))
}

func TestRunQuietSuppressesTokenOutput(t *testing.T) {
	path := writeNDJSON(t, `{"a":1}`)
	cfg := config.Default()

	var out bytes.Buffer
	require.NoError(t, run(cfg, path, false, true, &out))
	require.Empty(t, out.String())
}

func TestRunSkipsBlankLines(t *testing.T) {
	path := writeNDJSON(t, ``, `true`, `   `, `false`)
	cfg := config.Default()

	var out bytes.Buffer
	require.NoError(t, run(cfg, path, false, false, &out))
	require.Equal(t, 1, bytes.Count(out.Bytes(), []byte("true depth=")))
	require.Equal(t, 1, bytes.Count(out.Bytes(), []byte("false depth=")))
}
