package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/batepapo/internal/api"
	"github.com/mcoot/batepapo/internal/api/apierr"
	"github.com/mcoot/batepapo/internal/api/response"
	"github.com/mcoot/batepapo/internal/dependencies/mocks"
	"github.com/mcoot/batepapo/internal/factory"
	"github.com/mcoot/batepapo/internal/services/exchange"
	"github.com/mcoot/batepapo/internal/services/registry"
	"github.com/mcoot/batepapo/internal/storage/memory"
	"github.com/mcoot/batepapo/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:   testutil.NopLogger(),
		Registry: app.Registry,
		Exchange: app.Exchange,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, user string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("User", user)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) tick() {
	ts.app.MockClock.Advance(time.Second)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

// decodeMessages reads the array of messages a 422 response carries
func decodeMessages(t *testing.T, rr *httptest.ResponseRecorder) []string {
	t.Helper()

	var messages []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &messages))
	return messages
}

func (ts *testServer) rawRequest(method, path, body, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("User", user)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRegisterParticipant(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/participants", map[string]string{"name": "alice"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = ts.request(http.MethodGet, "/participants", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var participants []response.Participant
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &participants))
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].Name)
	assert.Equal(t, ts.app.MockClock.Now().UnixMilli(), participants[0].LastStatus)
}

func TestRegisterDuplicateName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/participants", map[string]string{"name": "alice"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/participants", map[string]string{"name": "alice"}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNameTaken, decodeError(t, rr).Code)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []any{map[string]string{"name": ""}, map[string]string{}, nil} {
		rr := ts.request(http.MethodPost, "/participants", body, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, []string{`"name" is required`}, decodeMessages(t, rr))
	}

	assert.Equal(t, 0, ts.app.Memory.MessageCount())
}

func TestRegisterNameWrongType(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{`{"name":123}`, `{"name":true}`, `{"name":["alice"]}`} {
		rr := ts.rawRequest(http.MethodPost, "/participants", body, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, body)
		assert.Equal(t, []string{`"name" must be a string`}, decodeMessages(t, rr), body)
	}

	rr := ts.rawRequest(http.MethodPost, "/participants", `{"name":null}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{`"name" is required`}, decodeMessages(t, rr))

	assert.JSONEq(t, "[]", ts.request(http.MethodGet, "/participants", nil, "").Body.String())
}

func TestRegisterBodyNotAnObject(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.rawRequest(http.MethodPost, "/participants", `["alice"]`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{`"value" must be of type object`}, decodeMessages(t, rr))
}

func TestRegisterMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/participants", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestListParticipantsEmpty(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/participants", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestPostMessage(t *testing.T) {
	ts := newTestServer(t)
	joinRoom(t, ts, "alice")

	body := map[string]string{"to": "Todos", "text": "oi", "type": "message"}
	rr := ts.request(http.MethodPost, "/messages", body, "alice")
	assert.Equal(t, http.StatusCreated, rr.Code)

	messages := getMessages(t, ts, "/messages", "alice")
	require.Len(t, messages, 2)
	assert.Equal(t, response.Message{From: "alice", To: "Todos", Text: "oi", Type: "message", Time: "12:00:01"}, messages[0])
}

func TestPostMessageUnregistered(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"to": "Todos", "text": "boo", "type": "message"}
	rr := ts.request(http.MethodPost, "/messages", body, "ghost")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{"you must join the room before sending a message"}, decodeMessages(t, rr))
}

func TestPostMessageValidation(t *testing.T) {
	ts := newTestServer(t)
	joinRoom(t, ts, "alice")

	// Missing User header, empty text and a reserved type are all reported
	body := map[string]string{"to": "Todos", "text": "", "type": "status"}
	rr := ts.request(http.MethodPost, "/messages", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{
		`"from" is required`,
		`"text" is required`,
		`"type" must be one of [message, private_message]`,
	}, decodeMessages(t, rr))
}

func TestPostMessageTypeWrongType(t *testing.T) {
	ts := newTestServer(t)
	joinRoom(t, ts, "alice")

	body := `{"to":"Todos","text":"hi","type":5}`
	rr := ts.rawRequest(http.MethodPost, "/messages", body, "alice")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{`"type" must be a string`}, decodeMessages(t, rr))

	// Missing sender is reported alongside the type mismatch
	rr = ts.rawRequest(http.MethodPost, "/messages", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{`"from" is required`, `"type" must be a string`}, decodeMessages(t, rr))

	assert.Len(t, getMessages(t, ts, "/messages", "alice"), 1)
}

func TestPostMessageEveryFieldWrongType(t *testing.T) {
	ts := newTestServer(t)
	joinRoom(t, ts, "alice")

	rr := ts.rawRequest(http.MethodPost, "/messages", `{"to":1,"text":{},"type":false}`, "alice")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{
		`"to" must be a string`,
		`"text" must be a string`,
		`"type" must be a string`,
	}, decodeMessages(t, rr))
}

func TestGetMessagesLimit(t *testing.T) {
	ts := newTestServer(t)
	joinRoom(t, ts, "alice")
	for range 3 {
		body := map[string]string{"to": "Todos", "text": "hi", "type": "message"}
		require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/messages", body, "alice").Code)
		ts.tick()
	}

	assert.Len(t, getMessages(t, ts, "/messages", "alice"), 4)
	assert.Len(t, getMessages(t, ts, "/messages?limit=2", "alice"), 2)
}

func TestGetMessagesInvalidLimit(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{"limit=0", "limit=-1", "limit=abc", "limit=", "limit=99999999999999999999"} {
		rr := ts.request(http.MethodGet, "/messages?"+q, nil, "alice")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, q)
		assert.Equal(t, []string{"enter a valid limit"}, decodeMessages(t, rr), q)
	}
}

func TestPrivateMessagesVisibility(t *testing.T) {
	ts := newTestServer(t)
	joinRoom(t, ts, "alice")
	joinRoom(t, ts, "bob")

	body := map[string]string{"to": "bob", "text": "psst", "type": "private_message"}
	require.Equal(t, http.StatusCreated, ts.request(http.MethodPost, "/messages", body, "alice").Code)

	bobView := getMessages(t, ts, "/messages", "bob")
	assert.Len(t, bobView, 3)
	assert.Equal(t, "psst", bobView[0].Text)

	carolView := getMessages(t, ts, "/messages", "carol")
	assert.Len(t, carolView, 2)
}

func TestStoreFailureRendersMessage(t *testing.T) {
	failing := testutil.NewFailingStorage(memory.New())
	failing.Fail(testutil.OpListParticipants, errors.New("connection refused"))
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Registry: registry.New(failing, clk, logger),
		Exchange: exchange.New(failing, clk, logger),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/participants", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInternalError, apiErr.Code)
	assert.Equal(t, "connection refused", apiErr.Message)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/messages", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "User")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSSimpleRequest(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/participants", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

// Helper functions

func joinRoom(t *testing.T, ts *testServer, name string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/participants", map[string]string{"name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	ts.tick()
}

func getMessages(t *testing.T, ts *testServer, path, user string) []response.Message {
	t.Helper()

	rr := ts.request(http.MethodGet, path, nil, user)
	require.Equal(t, http.StatusOK, rr.Code)

	var messages []response.Message
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &messages))
	return messages
}
