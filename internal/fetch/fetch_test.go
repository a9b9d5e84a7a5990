package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const supplierPage = `<!DOCTYPE html>
<html>
<head><title>Al Noor Building Materials</title></head>
<body>
<nav>Home | Products | Contact</nav>
<main>
<h1>Al Noor Building Materials</h1>
<p>Supplier of ready-mix concrete and steel rebar in Riyadh.</p>
</main>
<footer>Copyright 2026</footer>
<script>trackVisit();</script>
</body>
</html>`

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(supplierPage))
	}))
	defer server.Close()

	result, err := URL(t.Context(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Al Noor Building Materials")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(t.Context(), "not a url", nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func TestURL_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(t.Context(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ar", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"Accept-Language": "ar"}

	_, err := URL(t.Context(), server.URL, opts)
	require.NoError(t, err)
}

func TestExtractMainText_DropsNoise(t *testing.T) {
	text, err := ExtractMainText(supplierPage, DefaultTextSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "ready-mix concrete and steel rebar")
	assert.NotContains(t, text, "Home | Products | Contact")
	assert.NotContains(t, text, "Copyright 2026")
	assert.NotContains(t, text, "trackVisit")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain page with no main element.</p></body></html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Plain page with no main element.", text)
}

func TestExtractMainText_SupplierSelectors(t *testing.T) {
	html := `<html><body>
<div class="catalog">Cement 50kg bags, concrete blocks, washed sand.</div>
<div>Unrelated blurb.</div>
</body></html>`

	text, err := ExtractMainText(html, SupplierPageSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Cement 50kg bags, concrete blocks, washed sand.", text)
}

func TestCachedFetcher_SecondFetchHitsCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(supplierPage))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil)

	first, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, hits)
}

func TestCachedFetcher_SkipCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(supplierPage))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(&CachedFetcherConfig{SkipCache: true})

	_, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	_, err = fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(supplierPage))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil)

	_, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)

	fetcher.Invalidate(server.URL)

	result, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, hits)
}

const spaShell = `<html><body><div id="app"></div><script>bootApp();</script></body></html>`

func renderedCatalogPage() string {
	return `<html><body><main><h1>Al Noor Catalog</h1><p>` +
		strings.Repeat("Ready-mix concrete grade C30, steel rebar 12mm, washed sand. ", 20) +
		`</p></main></body></html>`
}

func TestCachedFetcher_BrowserFallbackForSPAs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(spaShell))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(&CachedFetcherConfig{UseBrowser: true})
	var renders int
	fetcher.render = func(_ context.Context, urlStr string) (string, error) {
		renders++
		assert.Equal(t, server.URL, urlStr)
		return renderedCatalogPage(), nil
	}

	result, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, renders)
	assert.Contains(t, result.Text, "Ready-mix concrete grade C30")

	// The rendered text lands in the cache like any other fetch.
	second, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Contains(t, second.Text, "Ready-mix concrete grade C30")
	assert.Equal(t, 1, renders)
}

func TestCachedFetcher_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(supplierPage))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(&CachedFetcherConfig{UseBrowser: true, SkipCache: true})
	fetcher.render = func(context.Context, string) (string, error) {
		return "", assert.AnError
	}

	result, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, result.Text, "ready-mix concrete and steel rebar")
}

func TestCachedFetcher_BrowserSkippedForFullPages(t *testing.T) {
	fullPage := `<html><body><main>` + strings.Repeat("supplier catalog text ", 40) + `</main></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fullPage))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(&CachedFetcherConfig{UseBrowser: true, SkipCache: true})
	var renders int
	fetcher.render = func(context.Context, string) (string, error) {
		renders++
		return "", nil
	}

	_, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 0, renders)
}

func TestCachedFetcher_BrowserDisabledByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(spaShell))
	}))
	defer server.Close()

	fetcher := NewCachedFetcher(nil)
	var renders int
	fetcher.render = func(context.Context, string) (string, error) {
		renders++
		return renderedCatalogPage(), nil
	}

	_, err := fetcher.Fetch(t.Context(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 0, renders)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.True(t, ShouldUseBrowser("   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("supplier catalog text ", 30)))
}
