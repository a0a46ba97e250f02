package yopmail

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIDVariants(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		wantMain string
		wantAlt  string
	}{
		{"plain reference", "abc123", "m_abc123", "e_abc123"},
		{"e_ reference", "e_xyz", "me_xyz", "e_xyz"},
		{"m_ reference", "m_42", "m_42", "m_42"},
		{"me_ reference", "me_42", "me_42", "me_42"},
		{"whitespace trimmed", " abc ", "m_abc", "e_abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variants := messageIDVariants(tt.ref)
			require.Len(t, variants, 3)
			assert.Equal(t, tt.wantMain, variants[0].id)
			assert.True(t, variants[0].fullParams)
			assert.Equal(t, tt.wantAlt, variants[1].id)
			assert.True(t, variants[1].fullParams)
			assert.Equal(t, strings.TrimSpace(tt.ref), variants[2].id)
			assert.False(t, variants[2].fullParams)
		})
	}
}

// mailSequence serves /en/mail with a scripted status sequence and
// records each request.
type mailSequence struct {
	statuses []int
	bodies   []string
	calls    []struct {
		id      string
		hasYP   bool
		mailbox string
	}
}

func (m *mailSequence) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m.calls = append(m.calls, struct {
		id      string
		hasYP   bool
		mailbox string
	}{q.Get("id"), q.Has("yp"), q.Get("b")})

	i := len(m.calls) - 1
	if i >= len(m.statuses) {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if m.statuses[i] != http.StatusOK {
		w.WriteHeader(m.statuses[i])
	}
	fmt.Fprint(w, m.bodies[i])
}

func TestFetchMessageFullVariantLoop(t *testing.T) {
	t.Run("third variant wins after two 400s", func(t *testing.T) {
		seq := &mailSequence{
			statuses: []int{400, 400, 200},
			bodies:   []string{"bad", "bad", `<div id="mail">hello from the third try</div>`},
		}
		srv := newTestServer(t, seq.handle)
		c := newTestClient(t, srv.URL)

		content, err := c.FetchMessageFull(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, "hello from the third try", content.Text)

		require.Len(t, seq.calls, 3)
		assert.Equal(t, "m_abc123", seq.calls[0].id)
		assert.Equal(t, "e_abc123", seq.calls[1].id)
		assert.Equal(t, "abc123", seq.calls[2].id)
		// The raw variant goes out with only mailbox+id.
		assert.True(t, seq.calls[0].hasYP)
		assert.True(t, seq.calls[1].hasYP)
		assert.False(t, seq.calls[2].hasYP)
		assert.Equal(t, "tester", seq.calls[0].mailbox)
	})

	t.Run("non-400 aborts immediately", func(t *testing.T) {
		seq := &mailSequence{
			statuses: []int{400, 500},
			bodies:   []string{"bad", "server broke"},
		}
		srv := newTestServer(t, seq.handle)
		c := newTestClient(t, srv.URL)

		_, err := c.FetchMessageFull(context.Background(), "abc123")
		require.Error(t, err)
		assert.True(t, IsStatus(err, 500))
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "server broke", se.Body)
		assert.Len(t, seq.calls, 2)
	})

	t.Run("first 2xx short-circuits", func(t *testing.T) {
		seq := &mailSequence{
			statuses: []int{200},
			bodies:   []string{`<div id="mail">first time lucky</div>`},
		}
		srv := newTestServer(t, seq.handle)
		c := newTestClient(t, srv.URL)

		content, err := c.FetchMessageFull(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, "first time lucky", content.Text)
		assert.Len(t, seq.calls, 1)
	})

	t.Run("all variants rejected reports last status", func(t *testing.T) {
		seq := &mailSequence{
			statuses: []int{400, 400, 400},
			bodies:   []string{"a", "b", "final refusal"},
		}
		srv := newTestServer(t, seq.handle)
		c := newTestClient(t, srv.URL)

		_, err := c.FetchMessageFull(context.Background(), "abc123")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 400, se.Code)
		assert.Equal(t, "final refusal", se.Body)
	})
}

func TestExtractMessageText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"nested container wins",
			`<div id="mailctn"><div id="mail">  actual   body  text </div><div>sidebar junk here</div></div>`,
			"actual body text",
		},
		{
			"fallback container",
			`<div class="message">a plain message body</div>`,
			"a plain message body",
		},
		{
			"short container skipped",
			`<div id="mail">hi</div><div class="content">the longer real content</div>`,
			"the longer real content",
		},
		{
			"no container collapses whole body",
			`just   some
			text`,
			"just some text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMessageText(tt.body))
		})
	}
}

func TestExtractMessageHTML(t *testing.T) {
	body := `<div id="mail">line<br/>break</div>`
	html := extractMessageHTML(body)
	assert.Contains(t, html, "<br/>")
	assert.Contains(t, html, "line")

	raw := `<span>tiny</span>`
	assert.Equal(t, raw, extractMessageHTML(raw))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \n\t b   c  "))
	assert.Equal(t, "", collapseWhitespace("   \n "))
}
