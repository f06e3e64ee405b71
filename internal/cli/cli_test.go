package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/batepapo/internal/api"
	"github.com/mcoot/batepapo/internal/factory"
	"github.com/mcoot/batepapo/internal/testutil"
)

type cliHarness struct {
	serverURL string
	userFile  string
	app       *factory.TestApp
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()

	app := factory.NewTestApp()
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:   testutil.NopLogger(),
		Registry: app.Registry,
		Exchange: app.Exchange,
	}))
	t.Cleanup(srv.Close)

	return &cliHarness{
		serverURL: srv.URL,
		userFile:  filepath.Join(t.TempDir(), "user"),
		app:       app,
	}
}

func (h *cliHarness) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", h.serverURL,
		"--user-file", h.userFile,
		"--output", "json",
	}, args...)

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(fullArgs)
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return stdout.String(), err
}

func TestJoinSavesUser(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("join", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "joined as alice")

	data, err := os.ReadFile(h.userFile)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(data))
}

func TestJoinDuplicateFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("join", "alice")
	require.NoError(t, err)

	_, err = h.run("join", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME_TAKEN")
}

func TestSendAndReadMessages(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("join", "alice")
	require.NoError(t, err)

	_, err = h.run("send", "ola", "pessoal")
	require.NoError(t, err)

	out, err := h.run("messages", "--limit", "1")
	require.NoError(t, err)

	var messages []Message
	require.NoError(t, json.Unmarshal([]byte(out), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "ola pessoal", messages[0].Text)
	assert.Equal(t, "Todos", messages[0].To)
}

func TestSendPrivate(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("join", "alice")
	require.NoError(t, err)

	_, err = h.run("send", "--to", "bob", "--private", "psst")
	require.NoError(t, err)

	// Another viewer does not see it
	out, err := h.run("--user", "carol", "messages")
	require.NoError(t, err)

	var messages []Message
	require.NoError(t, json.Unmarshal([]byte(out), &messages))
	for _, m := range messages {
		assert.NotEqual(t, "psst", m.Text)
	}
}

func TestSendWithoutUser(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("send", "hello")
	assert.ErrorIs(t, err, errNoUser)
}

func TestSendBeforeJoinFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("--user", "ghost", "send", "boo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "you must join the room before sending a message (HTTP 422)")
}

func TestMessagesInvalidLimit(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("messages", "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enter a valid limit")
}

func TestParticipants(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("join", "alice")
	require.NoError(t, err)

	out, err := h.run("participants")
	require.NoError(t, err)

	var participants []Participant
	require.NoError(t, json.Unmarshal([]byte(out), &participants))
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].Name)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("health")
	require.NoError(t, err)
	assert.Contains(t, out, `"ok"`)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{Message{From: "alice", To: "Todos", Text: "entra na sala...", Type: "status", Time: "12:00:00"}, "(12:00:00) alice entra na sala..."},
		{Message{From: "alice", To: "Todos", Text: "oi", Type: "message", Time: "12:00:01"}, "(12:00:01) alice para Todos: oi"},
		{Message{From: "alice", To: "bob", Text: "psst", Type: "private_message", Time: "12:00:02"}, "(12:00:02) alice reservadamente para bob: psst"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMessage(tt.msg))
	}
}

func TestLoadUserPrefersExplicitValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user")
	require.NoError(t, os.WriteFile(path, []byte("alice\n"), 0o600))

	c := &Config{UserFile: path}
	require.NoError(t, c.LoadUser())
	assert.Equal(t, "alice", c.User)

	c = &Config{User: "bob", UserFile: path}
	require.NoError(t, c.LoadUser())
	assert.Equal(t, "bob", c.User)
}
