package yopmail

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testLoginPage = `<html><body>
<form id="f" method="post">
<input type="hidden" id="yp" name="yp" value="TESTTOKEN123">
</form>
</body></html>`

// newTestServer builds a server that answers the bootstrap choreography
// (login page GET + form POST) and delegates everything else.
func newTestServer(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/en/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/en/" {
			if r.Method == http.MethodPost {
				fmt.Fprint(w, "ok")
				return
			}
			fmt.Fprint(w, testLoginPage)
			return
		}
		handle(w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handle(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c, err := NewClient("tester", &Config{BaseURL: baseURL, Logger: logger})
	require.NoError(t, err)
	return c
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient("Alice@Yopmail.FR", nil)
	require.NoError(t, err)
	require.Equal(t, "alice", c.Mailbox)
	require.Equal(t, "yopmail.fr", c.Domain)
	require.Equal(t, DefaultBaseURL, c.BaseURL())
	require.Empty(t, c.Token())
}

func TestNewClientUnsupportedProxy(t *testing.T) {
	_, err := NewClient("alice", &Config{ProxyURL: "ftp://proxy.local:21"})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestSessionRoundTrip(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Bootstrap(context.Background()))
	require.Equal(t, "TESTTOKEN123", c.Token())

	state := c.Session()
	require.Equal(t, "tester", state.Mailbox)
	require.Equal(t, "TESTTOKEN123", state.YPToken)
	require.Equal(t, "tester", state.Cookies["ywm"])

	restored := newTestClient(t, srv.URL)
	restored.RestoreSession(state)
	require.Equal(t, "TESTTOKEN123", restored.Token())
}

func TestRestoreSessionWrongMailbox(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:0")
	c.RestoreSession(&SessionState{Mailbox: "other", YPToken: "X"})
	require.Empty(t, c.Token())
}
