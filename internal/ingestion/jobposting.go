package ingestion

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resumeace/internal/fetch"
)

// MinPostingLength is the shortest extracted posting accepted without a browser retry
const MinPostingLength = 500

// JobPostingOptions configures FetchJobPosting
type JobPostingOptions struct {
	// UseBrowser retries through headless Chrome when the HTTP page is too short
	UseBrowser     bool
	BrowserTimeout time.Duration
	Fetch          *fetch.Options
	Verbose        bool
}

// FetchJobPosting downloads a job posting and returns its description as markup,
// ready to be passed to the job match tool.
func FetchJobPosting(ctx context.Context, urlStr string, opts JobPostingOptions) (string, error) {
	platform := DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[ingestion] fetching %s (platform: %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}

	text, err := ExtractJobPosting(result.HTML, platform)
	if err != nil {
		return "", err
	}
	if opts.Verbose {
		log.Printf("[ingestion] extracted %d chars from %d bytes of HTML", len(text), len(result.HTML))
	}

	if opts.UseBrowser && len(text) < MinPostingLength {
		rendered, browserErr := fetch.Render(ctx, urlStr, fetch.RenderOptions{Timeout: opts.BrowserTimeout, Verbose: opts.Verbose})
		if browserErr != nil {
			log.Printf("[ingestion] browser rendering failed, keeping HTTP content: %v", browserErr)
		} else if browserText, extractErr := ExtractJobPosting(rendered, platform); extractErr == nil && len(browserText) > len(text) {
			text = browserText
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no job description found at %s", urlStr)
	}
	return text, nil
}

// ExtractJobPosting strips page chrome from a posting and converts the main content
// to markup using the selectors for platform
func ExtractJobPosting(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("head, script, style, noscript, template, iframe, svg").Remove()

	content, noise := rulesFor(platform)
	doc.Find(strings.Join(noise, ", ")).Remove()

	var main *goquery.Selection
	for _, selector := range content {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}
	return convertSelection(main), nil
}
