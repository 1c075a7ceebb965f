package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	pages, err := Parse()
	require.NoError(t, err)

	for _, name := range pageNames {
		assert.Contains(t, pages.pages, name)
	}
}

func TestRenderUnknownPage(t *testing.T) {
	pages, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = pages.Render(&buf, "missing", nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderFailureWritesNothing(t *testing.T) {
	pages, err := Parse()
	require.NoError(t, err)

	// The error page needs a Meta field; a bare string cannot provide it.
	var buf bytes.Buffer
	err = pages.Render(&buf, "error", "oops")
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderErrorPage(t *testing.T) {
	pages, err := Parse()
	require.NoError(t, err)

	data := struct {
		Meta      Meta
		Heading   string
		Message   string
		Retry     string
		RequestID string
	}{
		Meta: Meta{
			Title:    "Oops <b>",
			AppLinks: []AppLink{{Property: "al:web:url", Content: "https://dex.test/"}},
		},
		Heading:   "Something went wrong",
		Retry:     "/?page=2",
		RequestID: "req-1",
	}

	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, "error", data))
	out := buf.String()

	assert.Contains(t, out, "<title>Oops &lt;b&gt;</title>")
	assert.Contains(t, out, `<meta property="al:web:url" content="https://dex.test/">`)
	assert.Contains(t, out, `href="/?page=2"`)
	assert.Contains(t, out, "Reference: req-1")
	assert.NotContains(t, out, "og:image")
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"style.css", "pokeball.svg"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}
