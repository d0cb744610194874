// Package scrape fetches a chapter page through a headless browser, returning
// its title, content text, a full-page screenshot, and the resolved "next
// chapter" link when one exists.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"bookflow/internal/config"
)

// ErrContentMissing reports that the configured content region was absent or
// empty on the fetched page.
var ErrContentMissing = errors.New("content region not found or empty")

// FetchError tags any failure to retrieve or extract a page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Page is one fetched chapter page. NextURL is empty when the page has no
// next-chapter link.
type Page struct {
	URL        string
	Title      string
	Text       string
	Screenshot []byte
	NextURL    string
}

type Scraper struct {
	contentSelector string
	nextLinkText    string
	titleTrimSuffix string
	timeout         time.Duration
}

func NewScraper(cfg *config.ScrapeConfig) *Scraper {
	return &Scraper{
		contentSelector: cfg.ContentSelector,
		nextLinkText:    cfg.NextLinkText,
		titleTrimSuffix: cfg.TitleTrimSuffix,
		timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Fetch loads the page in a fresh headless browser tab. The call blocks until
// the page is extracted or the configured timeout elapses.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	nextLinkScript := fmt.Sprintf(
		`(() => {
			const a = Array.from(document.querySelectorAll("a")).find(a => a.textContent.includes(%q));
			return a ? (a.getAttribute("href") || "") : "";
		})()`, s.nextLinkText)

	var (
		title, text, nextHref string
		screenshot            []byte
	)
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
		chromedp.Text(s.contentSelector, &text, chromedp.ByQuery, chromedp.AtLeast(0)),
		chromedp.Evaluate(nextLinkScript, &nextHref),
		chromedp.FullScreenshot(&screenshot, 90),
	)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &FetchError{URL: pageURL, Err: ErrContentMissing}
	}

	nextURL, err := ResolveNext(pageURL, nextHref)
	if err != nil {
		log.Warn().Err(err).Str("href", nextHref).Msg("Ignoring unparseable next-chapter link")
		nextURL = ""
	}

	return &Page{
		URL:        pageURL,
		Title:      strings.TrimSuffix(title, s.titleTrimSuffix),
		Text:       text,
		Screenshot: screenshot,
		NextURL:    nextURL,
	}, nil
}

// ResolveNext resolves a next-chapter href against the page it was found on.
// An empty href resolves to an empty URL, meaning "no next chapter".
func ResolveNext(base, href string) (string, error) {
	if href == "" {
		return "", nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse base url: %v", err)
	}
	h, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("failed to parse next link: %v", err)
	}
	return b.ResolveReference(h).String(), nil
}
