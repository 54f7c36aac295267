package siteconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regportal/internal/siteconfig"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "site_config.json")
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	store := siteconfig.NewStore(storePath(t))
	assert.Equal(t, siteconfig.Default(), store.Load())
}

func TestLoadCorruptFileReturnsDefault(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	store := siteconfig.NewStore(path)
	assert.Equal(t, siteconfig.Default(), store.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := siteconfig.NewStore(storePath(t))

	doc := siteconfig.Document{
		SiteTitle:       "Python Bootcamp 2026",
		SiteDescription: "## Welcome\nRegister below.",
		SiteImage:       "banner.png",
	}
	require.NoError(t, store.Save(doc))

	assert.Equal(t, doc, store.Load())
}

func TestSaveOverwritesPrevious(t *testing.T) {
	store := siteconfig.NewStore(storePath(t))

	first := siteconfig.Default()
	first.SiteTitle = "First"
	require.NoError(t, store.Save(first))

	second := first
	second.SiteTitle = "Second"
	require.NoError(t, store.Save(second))

	assert.Equal(t, "Second", store.Load().SiteTitle)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "site_config.json")
	store := siteconfig.NewStore(path)

	require.NoError(t, store.Save(siteconfig.Default()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveRepairsCorruptFile(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	store := siteconfig.NewStore(path)
	require.NoError(t, store.Save(siteconfig.Default()))

	assert.Equal(t, siteconfig.Default(), store.Load())
}
