package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/supacode-demo/internal/server"
	"github.com/temirov/supacode-demo/internal/simulator"
)

const (
	testEdgeFunctionURL = "https://demo-project.supabase.co/functions/v1/ai-assistant"
	testDelay           = 30 * time.Millisecond
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(edgeFunctionURL string) *server.Server {
	return server.New(server.Options{
		Settings: server.NewSettings(edgeFunctionURL),
		Delay:    testDelay,
	})
}

func perform(t *testing.T, handler http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHealth(t *testing.T) {
	recorder := perform(t, newTestServer("").Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, recorder.Body.String())
}

func TestListOperations(t *testing.T) {
	recorder := perform(t, newTestServer("").Handler(), http.MethodGet, "/api/operations", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var views []server.OperationView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	require.Len(t, views, 5)
	assert.Equal(t, server.OperationView{Name: "complete", Label: "Complete"}, views[0])
	assert.Equal(t, server.OperationView{Name: "document", Label: "Document"}, views[4])
}

func TestSubmitReturnsCannedResult(t *testing.T) {
	handler := newTestServer(testEdgeFunctionURL).Handler()
	startedAt := time.Now()
	recorder := perform(t, handler, http.MethodPost, "/api/operations/test/submit", `{"source_text":"function calculateTotal(items) {...}"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.GreaterOrEqual(t, time.Since(startedAt), testDelay)

	var response server.SubmitResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	expected, _ := simulator.CannedResponse(simulator.OperationTest)
	assert.Equal(t, expected, response.ResultText)
	assert.Equal(t, "test", response.Operation)
	assert.Equal(t, "resolved", response.State)
	assert.True(t, response.Configured)
	assert.NotEmpty(t, response.ID)
}

func TestSubmitWithoutEndpointReturnsInstructions(t *testing.T) {
	recorder := perform(t, newTestServer("").Handler(), http.MethodPost, "/api/operations/refactor/submit", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response server.SubmitResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, simulator.MissingEndpointMessage, response.ResultText)
	assert.False(t, response.Configured)
}

func TestSubmitRejectsUnknownOperationAndBadBody(t *testing.T) {
	handler := newTestServer(testEdgeFunctionURL).Handler()

	unknown := perform(t, handler, http.MethodPost, "/api/operations/deploy/submit", `{}`)
	assert.Equal(t, http.StatusNotFound, unknown.Code)

	malformed := perform(t, handler, http.MethodPost, "/api/operations/explain/submit", `{"source_text":`)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
}

func TestSubmitAbandonedByClient(t *testing.T) {
	handler := server.New(server.Options{Settings: server.NewSettings(testEdgeFunctionURL), Delay: time.Minute}).Handler()
	ctx, cancel := context.WithCancel(context.Background())
	request := httptest.NewRequest(http.MethodPost, "/api/operations/explain/submit", nil).WithContext(ctx)
	recorder := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(recorder, request)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("handler did not return after cancellation")
	}
	assert.Equal(t, 499, recorder.Code)
}

func TestEndpointSetting(t *testing.T) {
	handler := newTestServer("").Handler()

	initial := perform(t, handler, http.MethodGet, "/api/endpoint", "")
	require.Equal(t, http.StatusOK, initial.Code)
	assert.JSONEq(t, `{"edge_function_url":"","configured":false}`, initial.Body.String())

	rejected := perform(t, handler, http.MethodPut, "/api/endpoint", `{"url":"http://insecure.example/fn"}`)
	assert.Equal(t, http.StatusBadRequest, rejected.Code)

	missing := perform(t, handler, http.MethodPut, "/api/endpoint", `{}`)
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	accepted := perform(t, handler, http.MethodPut, "/api/endpoint", `{"url":"`+testEdgeFunctionURL+`"}`)
	require.Equal(t, http.StatusOK, accepted.Code)

	var view server.EndpointView
	require.NoError(t, json.Unmarshal(accepted.Body.Bytes(), &view))
	assert.Equal(t, server.EndpointView{EdgeFunctionURL: testEdgeFunctionURL, Configured: true}, view)

	submitted := perform(t, handler, http.MethodPost, "/api/operations/document/submit", `{"source_text":""}`)
	require.Equal(t, http.StatusOK, submitted.Code)
	var response server.SubmitResponse
	require.NoError(t, json.Unmarshal(submitted.Body.Bytes(), &response))
	expected, _ := simulator.CannedResponse(simulator.OperationDocument)
	assert.Equal(t, expected, response.ResultText)

	cleared := perform(t, handler, http.MethodPut, "/api/endpoint", `{"url":""}`)
	require.Equal(t, http.StatusOK, cleared.Code)
	assert.JSONEq(t, `{"edge_function_url":"","configured":false}`, cleared.Body.String())
}

func TestListings(t *testing.T) {
	handler := newTestServer("").Handler()

	all := perform(t, handler, http.MethodGet, "/api/listings", "")
	require.Equal(t, http.StatusOK, all.Code)
	assert.Contains(t, all.Body.String(), "ai-assistant")

	one := perform(t, handler, http.MethodGet, "/api/listings/database-schema", "")
	require.Equal(t, http.StatusOK, one.Code)
	assert.Contains(t, one.Body.String(), "user_subscriptions")

	missing := perform(t, handler, http.MethodGet, "/api/listings/unknown", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestServer("").Handler()
	request := httptest.NewRequest(http.MethodOptions, "/api/operations/test/submit", nil)
	request.Header.Set("Origin", "https://docs.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestSettingsSnapshotIsValidated(t *testing.T) {
	settings := server.NewSettings("")
	assert.Error(t, settings.SetEdgeFunctionURL("ftp://files.example"))
	assert.NoError(t, settings.SetEdgeFunctionURL("  "+testEdgeFunctionURL+"  "))
	assert.Equal(t, testEdgeFunctionURL, settings.EdgeFunctionURL())
}

func TestRunServesUntilContextCancelled(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	runErrors := make(chan error, 1)
	go func() {
		runErrors <- newTestServer("").Run(ctx, address)
	}()

	require.Eventually(t, func() bool {
		response, getErr := http.Get("http://" + address + "/health")
		if getErr != nil {
			return false
		}
		defer response.Body.Close()
		return response.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case runErr := <-runErrors:
		assert.NoError(t, runErr)
	case <-time.After(10 * time.Second):
		t.Fatalf("Run did not return after cancellation")
	}

	_, getErr := http.Get("http://" + address + "/health")
	assert.Error(t, getErr)
}

func TestRunReportsListenFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	runErr := newTestServer("").Run(context.Background(), listener.Addr().String())
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "listen on")
}
