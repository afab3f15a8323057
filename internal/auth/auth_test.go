package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stockpredict/internal/kvstore"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return NewManager(kv)
}

func TestSignUp_SignsIn(t *testing.T) {
	t.Parallel()

	m := openTestManager(t)
	user, err := m.SignUp("Ada", "ada@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "ada@example.com", user.Email)
	require.NotZero(t, user.CreatedAt)

	current, err := m.Current()
	require.NoError(t, err)
	require.Equal(t, user, current)
}

func TestSignUp_DuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	m := openTestManager(t)
	_, err := m.SignUp("Ada", "ada@example.com", "hunter2")
	require.NoError(t, err)

	_, err = m.SignUp("Imposter", "ADA@Example.COM", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_EmptyPassword(t *testing.T) {
	t.Parallel()

	m := openTestManager(t)
	_, err := m.SignUp("Ada", "ada@example.com", "")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	m := openTestManager(t)
	created, err := m.SignUp("Ada", "ada@example.com", "hunter2")
	require.NoError(t, err)
	require.NoError(t, m.SignOut())

	_, err = m.SignIn("ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrBadPassword)

	_, err = m.SignIn("nobody@example.com", "hunter2")
	require.ErrorIs(t, err, ErrNoAccount)

	user, err := m.SignIn("ADA@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}

func TestSignOut_ClearsCurrent(t *testing.T) {
	t.Parallel()

	m := openTestManager(t)
	_, err := m.SignUp("Ada", "ada@example.com", "hunter2")
	require.NoError(t, err)

	require.NoError(t, m.SignOut())
	_, err = m.Current()
	require.ErrorIs(t, err, ErrNotSignedIn)

	// Signing out twice is fine.
	require.NoError(t, m.SignOut())
}
