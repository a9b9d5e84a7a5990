package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the extracted-text length below which a page is
// treated as JavaScript-rendered and worth re-fetching through a browser.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a single headless render.
const DefaultBrowserTimeout = 45 * time.Second

// ShouldUseBrowser reports whether the extracted text is too short to be
// a real page, which usually means an SPA storefront.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// RenderWithBrowser loads the URL in headless Chrome and returns the DOM
// after client-side rendering settles. Requires a Chrome or Chromium
// binary on the host.
func RenderWithBrowser(ctx context.Context, urlStr string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Supplier catalogs often stream in after the initial paint.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss cookie banners when present.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering of %s failed: %w", urlStr, err)
	}

	return html, nil
}
