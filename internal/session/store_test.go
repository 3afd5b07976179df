package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type headerSpy struct {
	token   string
	sets    int
	clears  int
	cleared bool
}

func (h *headerSpy) SetToken(token string) {
	h.token = token
	h.sets++
	h.cleared = false
}

func (h *headerSpy) ClearToken() {
	h.token = ""
	h.clears++
	h.cleared = true
}

func newTestStore(t *testing.T) (*Store, *headerSpy) {
	t.Helper()
	spy := &headerSpy{}
	path := filepath.Join(t.TempDir(), ".collective", "token")
	return New(path, spy), spy
}

func TestGetAbsentTokenIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, "", s.Get())
}

func TestSetPersistsAndMirrorsHeader(t *testing.T) {
	s, spy := newTestStore(t)

	require.NoError(t, s.Set("tok-abc"))
	assert.Equal(t, "tok-abc", s.Get())
	assert.Equal(t, "tok-abc", spy.token, "header must be updated in the same call as the file")
	assert.Equal(t, 1, spy.sets)

	// Token file must not be world-readable.
	info, err := os.Stat(s.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetOverwritesPreviousToken(t *testing.T) {
	s, spy := newTestStore(t)

	require.NoError(t, s.Set("first"))
	require.NoError(t, s.Set("second"))
	assert.Equal(t, "second", s.Get())
	assert.Equal(t, "second", spy.token)
}

func TestClearRemovesFileAndHeader(t *testing.T) {
	s, spy := newTestStore(t)

	require.NoError(t, s.Set("tok"))
	require.NoError(t, s.Clear())

	assert.Equal(t, "", s.Get())
	assert.True(t, spy.cleared, "header must be cleared with the file")
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err), "token file should be gone after Clear")
}

func TestClearWhenAbsentIsNoOp(t *testing.T) {
	s, spy := newTestStore(t)

	require.NoError(t, s.Clear())
	assert.Equal(t, 1, spy.clears, "header is still cleared so stale credentials never linger")
}

func TestGetTrimsWhitespace(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0700))
	require.NoError(t, os.WriteFile(s.path, []byte("  tok-xyz\n"), 0600))
	assert.Equal(t, "tok-xyz", s.Get())
}

func TestNilHeaderIsTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := New(path, nil)
	require.NoError(t, s.Set("tok"))
	require.NoError(t, s.Clear())
}
