package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/slidefx/internal/config"
)

func TestShowConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slidefx.toml")

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, path, config.DefaultConfig()))
	assert.Contains(t, buf.String(), "defaults apply")
	assert.Contains(t, buf.String(), "slide duration 200ms")
	assert.Contains(t, buf.String(), "[animation]")

	require.NoError(t, config.DefaultConfig().Save(path))
	buf.Reset()
	require.NoError(t, showConfig(&buf, path, config.DefaultConfig()))
	assert.Contains(t, buf.String(), "modified")
	assert.NotContains(t, buf.String(), "defaults apply")
}
