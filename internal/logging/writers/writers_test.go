package writers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWriter(t *testing.T) {
	t.Parallel()

	t.Run("standard streams", func(t *testing.T) {
		w, err := CreateWriter("")
		require.NoError(t, err)
		assert.Equal(t, os.Stderr, w)

		w, err = CreateWriter("stdout")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, w)
	})

	t.Run("plain file path creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "launcher.log")
		w, err := CreateWriter(path)
		require.NoError(t, err)

		f, ok := w.(*os.File)
		require.True(t, ok)
		t.Cleanup(func() { assert.NoError(t, f.Close()) })

		_, err = f.WriteString("hello\n")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(content))
	})

	t.Run("file scheme", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scheme.log")
		w, err := CreateWriter("file://" + path)
		require.NoError(t, err)
		require.NoError(t, w.(*os.File).Close())
		assert.FileExists(t, path)
	})

	t.Run("rejects other schemes", func(t *testing.T) {
		w, err := CreateWriter("redis://localhost:6379")
		require.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("rejects bare words", func(t *testing.T) {
		_, err := CreateWriter("syslog")
		require.Error(t, err)
	})
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindStderr, ParseKind(""))
	assert.Equal(t, KindStderr, ParseKind("stderr"))
	assert.Equal(t, KindStdout, ParseKind("stdout"))
	assert.Equal(t, KindFile, ParseKind("/var/log/x.log"))
}
