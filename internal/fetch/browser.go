package fetch

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser session defaults
const (
	DefaultBrowserTimeout = 30 * time.Second
	DefaultSettle         = 2 * time.Second
)

// NewBrowser starts a headless Chrome allocator and tab. The returned cancel
// releases both. Requires Chrome or Chromium on the system.
func NewBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

// RenderOptions configures Render. Settle is how long scripts get after the body
// is ready.
type RenderOptions struct {
	Timeout time.Duration
	Settle  time.Duration
	Verbose bool
}

// Render loads url in a headless browser and returns the HTML after scripts ran,
// for job boards that build the posting client-side.
func Render(ctx context.Context, url string, opts RenderOptions) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	settle := opts.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	if opts.Verbose {
		log.Printf("[browser] rendering %s", url)
	}

	browserCtx, cancel := NewBrowser(ctx)
	defer cancel()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	if opts.Verbose {
		log.Printf("[browser] rendered %d bytes", len(html))
	}
	return html, nil
}
