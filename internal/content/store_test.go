package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regportal/internal/content"
)

func TestReadAbsentModuleReturnsPlaceholder(t *testing.T) {
	store := content.NewStore(t.TempDir())

	text, err := store.Read("intro")
	require.NoError(t, err)
	assert.Equal(t, content.Placeholder, text)
}

func TestWriteThenRead(t *testing.T) {
	store := content.NewStore(t.TempDir())

	require.NoError(t, store.Write("intro", "Week one covers Python basics."))

	text, err := store.Read("intro")
	require.NoError(t, err)
	assert.Equal(t, "Week one covers Python basics.", text)
}

func TestWriteOverwritesWholeBlob(t *testing.T) {
	store := content.NewStore(t.TempDir())

	require.NoError(t, store.Write("intro", "first draft"))
	require.NoError(t, store.Write("intro", "final"))

	text, err := store.Read("intro")
	require.NoError(t, err)
	assert.Equal(t, "final", text)
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")
	store := content.NewStore(dir)

	require.NoError(t, store.Write("intro", "hello"))

	_, err := os.Stat(filepath.Join(dir, "intro.txt"))
	assert.NoError(t, err)
}

func TestInvalidModuleNames(t *testing.T) {
	store := content.NewStore(t.TempDir())

	for _, name := range []string{"", "../etc/passwd", "a/b", ".hidden", "white space"} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Read(name)
			assert.ErrorIs(t, err, content.ErrInvalidModule)

			err = store.Write(name, "payload")
			assert.ErrorIs(t, err, content.ErrInvalidModule)
		})
	}
}
