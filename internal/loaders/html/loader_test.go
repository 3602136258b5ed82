package html

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/loaders/ratelimit"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title> Release Notes </title><style>body { color: red; }</style></head>
<body>
<header>Site header</header>
<nav><a href="/">Home</a></nav>
<h1>Version 2.0</h1>
<p>Faster startup &amp; smaller binaries.</p>
<div style="display: none">secret promo</div>
<ul><li>First change</li><li>Second change</li></ul>
<script>trackVisit();</script>
<footer>Copyright</footer>
</body>
</html>`

var fastLimit = ratelimit.Config{RequestsPerSecond: 1000, BurstSize: 100}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(Config{URLs: []string{"http://x"}, Mode: "fancy"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	l, err := New(Config{URLs: []string{"http://x"}})
	require.NoError(t, err)
	assert.Equal(t, ModeSimple, l.cfg.Mode)
	assert.Equal(t, "html", l.Name())
}

func TestLoader_Load_Simple(t *testing.T) {
	srv := serve(t, samplePage)
	l, err := New(Config{URLs: []string{srv.URL}, RateLimit: fastLimit})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Contains(t, doc.Text, "Faster startup & smaller binaries.")
	assert.Contains(t, doc.Text, "Site header")
	assert.NotContains(t, doc.Text, "<p>")
	assert.NotContains(t, doc.Text, "trackVisit")
	assert.NotContains(t, doc.Text, "color: red")
	assert.Equal(t, "html", doc.GetString(domain.KeySourceType))
	assert.Equal(t, srv.URL, doc.GetString(domain.KeyURL))
	assert.Equal(t, "Release Notes", doc.GetString(domain.KeyTitle))
}

func TestLoader_Load_Structured(t *testing.T) {
	srv := serve(t, samplePage)
	l, err := New(Config{URLs: []string{srv.URL}, Mode: ModeStructured, RateLimit: fastLimit})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t,
		"Version 2.0\nFaster startup & smaller binaries.\nFirst change\nSecond change",
		docs[0].Text,
	)
	assert.Equal(t, "Release Notes", docs[0].GetString(domain.KeyTitle))
}

func TestLoader_Load_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l, err := New(Config{URLs: []string{srv.URL}, RateLimit: fastLimit})
	require.NoError(t, err)

	_, err = l.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoaderFailed)
}

func TestLoader_Load_UserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
		fmt.Fprint(w, "<p>ok</p>")
	}))
	defer srv.Close()

	l, err := New(Config{URLs: []string{srv.URL}, UserAgent: "docprep-test", RateLimit: fastLimit})
	require.NoError(t, err)

	docs, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "docprep-test", ua)
	_, hasTitle := docs[0].Get(domain.KeyTitle)
	assert.False(t, hasTitle)
}

func TestStructuredText_FallbackToBody(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<html><body><div>loose <span>text</span></div></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, "loose text", StructuredText(root))
}

func TestStructuredText_HiddenAttributes(t *testing.T) {
	root, err := html.Parse(strings.NewReader(
		`<p>shown</p><p hidden>gone</p><p aria-hidden="true">also gone</p><p style="visibility:hidden">nope</p>`,
	))
	require.NoError(t, err)

	assert.Equal(t, "shown", StructuredText(root))
}

func TestStructuredText_Tables(t *testing.T) {
	root, err := html.Parse(strings.NewReader(
		`<table><tr><th>Name</th><th>Size</th></tr><tr><td>a.txt</td><td>3</td></tr></table>`,
	))
	require.NoError(t, err)

	assert.Equal(t, "Name Size\na.txt 3", StructuredText(root))
}
