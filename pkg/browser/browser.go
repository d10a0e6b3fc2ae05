// Package browser wraps a headless Chrome session behind the small surface
// the crawl loop needs: navigate with HTTP status, rendered markup, anchor
// harvesting, and best-effort hover for dropdown navigation.
package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"site-crawler/pkg/config"
	"site-crawler/pkg/utils"
)

// Anchor is one link harvested from the live page.
type Anchor struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Session owns one browser tab shared by every navigation of a crawl
// session. The crawl is serial by design, so a single tab is enough.
type Session struct {
	log         *logrus.Entry
	cfg         config.BrowserConfig
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewSession launches the browser. A launch failure is the one fatal error
// class of the crawler; everything after this is per-page and recoverable.
func NewSession(parent context.Context, cfg config.BrowserConfig, log *logrus.Entry) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if cfg.Headed {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Run a no-op so the browser process starts now and launch failures
	// surface here instead of on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("%w: launching browser: %w", utils.ErrBrowserSetup, err)
	}

	log.Debug("Browser session started")
	return &Session{
		log:         log,
		cfg:         cfg,
		allocCancel: allocCancel,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Close shuts the tab and the browser process down.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// Navigate loads pageURL, waits for the body plus the configured settle
// time, and returns the HTTP status of the navigation.
func (s *Session) Navigate(pageURL string) (int, error) {
	tctx, cancelTab := context.WithTimeout(s.ctx, s.cfg.PageLoadTimeout.Std())
	defer cancelTab()

	resp, err := chromedp.RunResponse(tctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.cfg.SettleWait.Std()),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: navigate '%s': %w", utils.ErrNavigation, pageURL, err)
	}
	if resp == nil {
		// Same-document navigation; treat as success
		return 200, nil
	}
	return int(resp.Status), nil
}

// HTML returns the rendered markup of the current page.
func (s *Session) HTML() (string, error) {
	tctx, cancel := context.WithTimeout(s.ctx, s.cfg.QueryTimeout.Std())
	defer cancel()

	var html string
	if err := chromedp.Run(tctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: reading page markup: %w", utils.ErrSelector, err)
	}
	return html, nil
}

// Anchors returns href/text pairs for every element matching selector on
// the current page. A query timeout means "nothing matched", not an error.
func (s *Session) Anchors(selector string) ([]Anchor, error) {
	tctx, cancel := context.WithTimeout(s.ctx, s.cfg.QueryTimeout.Std())
	defer cancel()

	js := fmt.Sprintf(`(() => {
		const out = [];
		document.querySelectorAll(%q).forEach(el => {
			out.push({
				href: el.getAttribute("href") || "",
				text: (el.innerText || el.textContent || "").trim(),
			});
		});
		return out;
	})()`, selector)

	var anchors []Anchor
	if err := chromedp.Run(tctx, chromedp.Evaluate(js, &anchors)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: querying '%s': %w", utils.ErrSelector, selector, err)
	}
	return anchors, nil
}

// Hover fires a mouseover on every element matching selector, then waits
// briefly for any revealed dropdown to render. Failures are the caller's to
// ignore; dropdown navigation is optional on most sites.
func (s *Session) Hover(selector string) error {
	tctx, cancel := context.WithTimeout(s.ctx, s.cfg.QueryTimeout.Std()+s.cfg.DropdownWait.Std())
	defer cancel()

	js := fmt.Sprintf(`(() => {
		let n = 0;
		document.querySelectorAll(%q).forEach(el => {
			el.dispatchEvent(new MouseEvent("mouseover", {bubbles: true}));
			n++;
		});
		return n;
	})()`, selector)

	var hovered int
	if err := chromedp.Run(tctx,
		chromedp.Evaluate(js, &hovered),
		chromedp.Sleep(s.cfg.DropdownWait.Std()),
	); err != nil {
		return fmt.Errorf("%w: hovering '%s': %w", utils.ErrSelector, selector, err)
	}
	if hovered > 0 {
		s.log.WithFields(logrus.Fields{"selector": selector, "count": hovered}).Debug("Hovered dropdown triggers")
	}
	return nil
}
