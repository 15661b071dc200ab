package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpad/quill/internal/api"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewSession()
	s.SetUser(api.User{
		ID:        "u1",
		Name:      "Ada Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		AvatarURL: "https://cdn.example.com/avatars/ada.png",
	}, "tok-123")
	require.NoError(t, s.Save(path))

	restored := NewSession()
	require.True(t, restored.Load(path))
	assert.Equal(t, "tok-123", restored.Token)
	assert.Equal(t, s.User, restored.User)
	assert.True(t, restored.LoggedIn)
}

func TestSessionFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewSession()
	s.SetUser(api.User{ID: "u1", Username: "ada"}, "tok")
	require.NoError(t, s.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "token file must be owner-only")
}

func TestSessionLoadFailures(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		s := NewSession()
		assert.False(t, s.Load(filepath.Join(dir, "nope.json")))
		assert.False(t, s.LoggedIn)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		s := NewSession()
		assert.False(t, s.Load(path))
	})

	t.Run("empty token", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"token":"","username":"ada"}`), 0o600))

		s := NewSession()
		assert.False(t, s.Load(path))
	})
}

func TestLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewSession()
	s.SetUser(api.User{ID: "u1", Username: "ada"}, "tok")
	require.NoError(t, s.Save(path))

	s.Logout(path)
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Token)
	assert.Empty(t, s.TokenSource()())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "persisted session removed on logout")
}

func TestSaveWhenLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewSession()
	require.NoError(t, s.Save(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing written for a logged-out session")
}
