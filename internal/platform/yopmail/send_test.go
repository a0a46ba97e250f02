package yopmail

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageInvalidRecipient(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	c := newTestClient(t, srv.URL)
	err := c.SendMessage(context.Background(), "x@evil.com", "s", "b")
	require.ErrorIs(t, err, ErrInvalidRecipient)
	// Rejected locally: no request went out, not even the bootstrap.
	assert.Zero(t, hits.Load())
	assert.Empty(t, c.Token())
}

func TestSendMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		check    func(t *testing.T, err error)
	}{
		{
			"success marker accepted",
			200, "msgto|12345",
			func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			"case-insensitive marker",
			200, "Message Sent OK",
			func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			"soft failure without marker",
			200, "error: mailbox does not accept messages",
			func(t *testing.T, err error) {
				var ae *AuthError
				require.ErrorAs(t, err, &ae)
				assert.Contains(t, ae.Body, "does not accept")
			},
		},
		{
			"status error on non-2xx",
			503, "maintenance",
			func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, 503, se.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form map[string]string
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/writepost" {
					http.NotFound(w, r)
					return
				}
				require.NoError(t, r.ParseForm())
				form = map[string]string{
					"msgfrom":    r.PostForm.Get("msgfrom"),
					"msgto":      r.PostForm.Get("msgto"),
					"msgsubject": r.PostForm.Get("msgsubject"),
					"msgbody":    r.PostForm.Get("msgbody"),
				}
				if tt.status != 200 {
					w.WriteHeader(tt.status)
				}
				fmt.Fprint(w, tt.response)
			})

			c := newTestClient(t, srv.URL)
			err := c.SendMessage(context.Background(), "friend@yopmail.com", "hello", "the body")
			tt.check(t, err)

			require.NotNil(t, form)
			assert.Equal(t, "tester@yopmail.com", form["msgfrom"])
			assert.Equal(t, "friend@yopmail.com", form["msgto"])
			assert.Equal(t, "hello", form["msgsubject"])
			assert.Equal(t, "the body", form["msgbody"])
		})
	}
}

func TestSendMessageCustomMarkers(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/writepost" {
			fmt.Fprint(w, "delivered=yes")
		}
	})

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c, err := NewClient("tester", &Config{
		BaseURL:        srv.URL,
		Logger:         logger,
		SuccessMarkers: []string{"delivered=yes"},
	})
	require.NoError(t, err)

	assert.NoError(t, c.SendMessage(context.Background(), "friend@yopmail.com", "s", "b"))
}
