package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRendersRules(t *testing.T) {
	rr := httptest.NewRecorder()
	Index(Templates(), PageData{Target: 24, NumCount: 4, MaxAttempts: 6}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Make 24</title>")
	assert.Contains(t, body, `data-attempts="6"`)
	assert.Contains(t, body, "/static/app.js")
}

func TestStaticFSServesAssets(t *testing.T) {
	fsys := StaticFS()
	for _, name := range []string{"/app.js", "/style.css"} {
		f, err := fsys.Open(name)
		require.NoError(t, err, name)
		b, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, b, name)
		f.Close()
	}
}
