package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_Usage(t *testing.T) {
	dir := t.TempDir()

	assert.ErrorIs(t, run(nil, dir, zap.NewNop()), errUsage)
	assert.ErrorIs(t, run([]string{"create"}, dir, zap.NewNop()), errUsage)
}

func TestRun_CreateAndList(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, run([]string{"create", "add party index", "speeds up counterparty reads"}, dir, zap.NewNop()))
	require.NoError(t, run([]string{"create", "add_stock_index"}, dir, zap.NewNop()))

	for _, name := range []string{
		"000001_add_party_index.up.sql",
		"000001_add_party_index.down.sql",
		"000002_add_stock_index.up.sql",
		"000002_add_stock_index.down.sql",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	assert.NoError(t, run([]string{"list"}, dir, zap.NewNop()))
}

func TestIntArg(t *testing.T) {
	n, err := intArg([]string{"step", "-2"}, "migrate step <n>")
	require.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = intArg([]string{"step"}, "migrate step <n>")
	assert.ErrorIs(t, err, errUsage)

	_, err = intArg([]string{"force", "two"}, "migrate force <version>")
	assert.ErrorIs(t, err, errUsage)
}
