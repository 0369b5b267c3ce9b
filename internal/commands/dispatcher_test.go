package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddesk/internal/config"
	"fooddesk/internal/model"
)

// testConfig builds an isolated config pointing at the given backend URL.
func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		APIBaseURL:  apiURL,
		StateDir:    dir,
		DraftDBPath: filepath.Join(dir, "drafts.sqlite"),
		PageSize:    10,
	}
}

// captureOut redirects command output for the duration of a test.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Out
	buf := &bytes.Buffer{}
	Out = buf
	t.Cleanup(func() { Out = prev })
	return buf
}

func loginTestSession(t *testing.T, cfg *config.Config) {
	t.Helper()
	sess := newSession(cfg)
	require.NoError(t, sess.SetUser(model.Record{"_id": "u1", "name": "Ops"}))
	require.NoError(t, sess.SetLoggedIn(true))
	require.NoError(t, sess.SetToken("tok"))
}

func TestDispatch_NoArgsShowsUsage(t *testing.T) {
	out := captureOut(t)
	code := Dispatch(context.Background(), testConfig(t, "http://unused"), nil)
	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "Commands:")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	out := captureOut(t)
	code := Dispatch(context.Background(), testConfig(t, "http://unused"), []string{"frobnicate"})
	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestDispatch_HelpGlobalAndPerCommand(t *testing.T) {
	out := captureOut(t)
	code := Dispatch(context.Background(), testConfig(t, "http://unused"), []string{"help"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "fdadmin")

	out.Reset()
	code = Dispatch(context.Background(), testConfig(t, "http://unused"), []string{"help", "restaurants"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "restaurants [--search")
	// usage advertises every flag the command parses
	assert.Contains(t, out.String(), "[--page-size <n>]")
}

func TestDispatch_ProtectedCommandRequiresSession(t *testing.T) {
	out := captureOut(t)
	cfg := testConfig(t, "http://unused")

	code := Dispatch(context.Background(), cfg, []string{"restaurants"})
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "not logged in")
	assert.Contains(t, out.String(), "fdadmin login")
}

func TestDispatch_StatusIsNotProtected(t *testing.T) {
	out := captureOut(t)
	cfg := testConfig(t, "http://unused")

	code := Dispatch(context.Background(), cfg, []string{"status"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Not logged in.")
}

func TestDispatch_UsageErrorPrintsCommandUsage(t *testing.T) {
	out := captureOut(t)
	cfg := testConfig(t, "http://unused")
	loginTestSession(t, cfg)

	// restaurant-update without an id
	code := Dispatch(context.Background(), cfg, []string{"restaurant-update"})
	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "Usage: restaurant-update")
}

func TestDispatch_NetworkFailureIsGeneric(t *testing.T) {
	out := captureOut(t)
	cfg := testConfig(t, "http://127.0.0.1:1") // nothing listens there
	loginTestSession(t, cfg)

	code := Dispatch(context.Background(), cfg, []string{"restaurants"})
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "could not be reached")
}
