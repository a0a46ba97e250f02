package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yopmail-tools/go-yopmail-cli/internal/platform/yopmail"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	s, err := NewSessionStorage()
	require.NoError(t, err)
	return s
}

func testState(mailbox string) *yopmail.SessionState {
	return &yopmail.SessionState{
		Mailbox:   mailbox,
		Domain:    "yopmail.com",
		YPToken:   "TOKEN",
		Cookies:   map[string]string{"yc": "abc", "ywm": mailbox},
		LastLogin: time.Now().Unix(),
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveSession(testState("tester")))
	assert.True(t, s.HasSession("tester"))

	loaded, err := s.LoadSession("tester")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tester", loaded.Mailbox)
	assert.Equal(t, "TOKEN", loaded.YPToken)
	assert.Equal(t, "abc", loaded.Cookies["yc"])
}

func TestSessionEncryptedAtRest(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SaveSession(testState("tester")))

	raw, err := os.ReadFile(s.sessionPath("tester"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "TOKEN")
	assert.NotContains(t, string(raw), "tester")
}

func TestLoadSessionMissing(t *testing.T) {
	s := newTestStorage(t)

	loaded, err := s.LoadSession("nobody")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveSessionEmpty(t *testing.T) {
	s := newTestStorage(t)

	assert.Error(t, s.SaveSession(nil))
	assert.Error(t, s.SaveSession(&yopmail.SessionState{}))
}

func TestLoadFreshSession(t *testing.T) {
	s := newTestStorage(t)

	fresh := testState("fresh")
	require.NoError(t, s.SaveSession(fresh))

	stale := testState("stale")
	stale.LastLogin = time.Now().Add(-SessionMaxAge - time.Minute).Unix()
	require.NoError(t, s.SaveSession(stale))

	got, err := s.LoadFreshSession("fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = s.LoadFreshSession("stale")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteSession(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveSession(testState("tester")))
	require.NoError(t, s.DeleteSession("tester"))
	assert.False(t, s.HasSession("tester"))

	// Deleting a missing session is not an error.
	assert.NoError(t, s.DeleteSession("tester"))
}

func TestKeyReuseAcrossInstances(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SaveSession(testState("tester")))

	// A second storage over the same base path must read the same key
	// and decrypt existing sessions.
	s2, err := NewSessionStorage()
	require.NoError(t, err)

	loaded, err := s2.LoadSession("tester")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "TOKEN", loaded.YPToken)
}
