package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarium/internal/catalog"
)

// newTestStore opens a catalog store over a throwaway library file,
// optionally pre-seeded with books.
func newTestStore(t *testing.T, books ...catalog.Book) *catalog.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "library.json")
	store, err := catalog.Open(path)
	require.NoError(t, err)
	for _, b := range books {
		store.Add(b.Title, b.Author, b.Genre)
		if b.Reader != "" {
			store.Checkout(b.Title, b.IssueDate, b.DueDate, b.Reader)
		}
	}
	return store
}

// newTestEngine builds a bare engine with the real template set loaded,
// for wiring controllers directly.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	funcMap := template.FuncMap{"pathEscape": url.PathEscape}
	engine.SetHTMLTemplate(template.Must(template.New("").Funcs(funcMap).ParseGlob("../../templates/*.html")))
	return engine
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}
