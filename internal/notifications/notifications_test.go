package notifications

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_DisabledWithoutTopicIsNoOp(t *testing.T) {
	n := New("https://example.invalid", "")
	assert.NoError(t, n.Send("title", "message"))
}

func TestSend_PostsToConfiguredTopic(t *testing.T) {
	var gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := New(server.URL, "thermod-alerts")
	require.NoError(t, n.Send("heating failed", "sensor unreachable"))

	assert.Equal(t, "/thermod-alerts", gotPath)
	assert.Contains(t, string(gotBody), "heating failed")
}

func TestSend_NonSuccessStatusReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := New(server.URL, "thermod-alerts")
	err := n.Send("title", "message")
	assert.Error(t, err)
}
