package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) (*FSStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewStore(fs, "/media")
	require.NoError(t, err)
	return store, fs
}

func TestFSStore_PutGetDelete(t *testing.T) {
	store, fs := newMemStore(t)

	key, err := store.Put("uploads/01ABC_test.docx", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)
	assert.Equal(t, "uploads/01ABC_test.docx", key)

	exists, err := afero.Exists(fs, "/media/uploads/01ABC_test.docx")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Get(key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	require.NoError(t, store.Delete(key))
	exists, err = afero.Exists(fs, "/media/uploads/01ABC_test.docx")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, store.Delete(key), "deleting a missing blob is not an error")
}

func TestFSStore_KeysStayInsideBase(t *testing.T) {
	store, fs := newMemStore(t)

	key, err := store.Put("../../etc/passwd", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	exists, err := afero.Exists(fs, "/media/etc/passwd")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.Put("", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = store.Get("/")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestUploadKey(t *testing.T) {
	assert.Equal(t, "uploads/01ABC_quiz.docx", UploadKey("01ABC", "quiz.docx"))
	assert.Equal(t, "uploads/01ABC_quiz.docx", UploadKey("01ABC", `C:\docs\quiz.docx`))
	assert.Equal(t, "uploads/01ABC_quiz.docx", UploadKey("01ABC", "../../quiz.docx"))
	assert.Equal(t, "uploads/01ABC_document.docx", UploadKey("01ABC", ""))
}
