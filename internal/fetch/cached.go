package fetch

import (
	"context"
	"time"

	"github.com/haitham/binaa-planner/internal/cache"
)

// CachedFetcher wraps URL fetching with an in-memory page cache so repeat
// outreach runs against the same supplier skip the network.
type CachedFetcher struct {
	pages      *cache.Store
	options    *Options
	skipCache  bool // For testing or forcing fresh fetches
	useBrowser bool

	// render re-fetches a page through the headless browser; replaced in
	// tests to avoid launching Chrome.
	render func(ctx context.Context, urlStr string) (string, error)
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	// UseBrowser enables the headless-browser fallback for pages whose
	// plain-HTTP text is too short to be useful.
	UseBrowser     bool
	BrowserTimeout time.Duration
	Options        *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  cache.DefaultTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	browserTimeout := config.BrowserTimeout
	return &CachedFetcher{
		pages:      cache.New(config.CacheTTL),
		options:    config.Options,
		skipCache:  config.SkipCache,
		useBrowser: config.UseBrowser,
		render: func(ctx context.Context, urlStr string) (string, error) {
			return RenderWithBrowser(ctx, urlStr, browserTimeout)
		},
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, using cached extracted text if available and fresh.
// Only the extracted text is cached; the raw HTML is not kept around.
// When the browser fallback is enabled and the plain-HTTP text is shorter
// than MinContentLength, the page is re-rendered in headless Chrome; a
// failed render keeps the plain-HTTP text.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if !f.skipCache {
		if text, ok := f.pages.Get(urlStr); ok {
			return &CachedResult{
				Result:    &Result{URL: urlStr, Text: text},
				FromCache: true,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	text, _ := ExtractMainText(result.HTML, SupplierPageSelectors())

	if f.useBrowser && ShouldUseBrowser(text) {
		if html, renderErr := f.render(ctx, urlStr); renderErr == nil {
			if rendered, extractErr := ExtractMainText(html, SupplierPageSelectors()); extractErr == nil && len(rendered) > len(text) {
				result.HTML = html
				text = rendered
			}
		}
	}

	result.Text = text
	f.pages.Set(urlStr, text)

	return &CachedResult{Result: result, FromCache: false}, nil
}

// Invalidate drops the cached text for a URL, forcing a re-fetch.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.pages.Invalidate(urlStr)
}
