package export

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resumeace/internal/fetch"
)

// Printer turns a standalone HTML page into PDF bytes
type Printer interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Letter paper in inches; margins come from the stylesheet's @page rule
const (
	paperWidth  = 8.5
	paperHeight = 11.0
)

// ChromePrinter prints through headless Chrome
type ChromePrinter struct {
	Timeout time.Duration
	Verbose bool
}

// PrintPDF loads html into a blank tab and prints it with backgrounds on
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = fetch.DefaultBrowserTimeout
	}

	browserCtx, cancel := fetch.NewBrowser(ctx)
	defer cancel()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to print page: %w", err)
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	if p.Verbose {
		log.Printf("[export] printed %d bytes of PDF", len(pdf))
	}
	return pdf, nil
}
