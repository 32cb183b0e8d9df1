// Package forecast supplies the per-ticker probability map the engine
// consumes. Probabilities come from scraped financial-news headlines scored
// against a sentiment lexicon; the engine itself never recomputes them.
package forecast

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"trend-signal-bot/internal/logger"
)

// Headline is one scraped article reference.
type Headline struct {
	Title  string
	URL    string
	Source string
}

// Source describes one news site and the selectors that locate headlines on
// its search/tag pages.
type Source struct {
	Name          string
	BaseURL       string
	SearchPath    string // "{ticker}" is substituted with the lowercase ticker
	ItemSelector  string
	TitleSelector string
	RateLimit     time.Duration
}

type Scraper struct {
	sources []Source
	timeout time.Duration
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{sources: defaultSources(), timeout: timeout}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:          "MoneyControl",
			BaseURL:       "https://www.moneycontrol.com",
			SearchPath:    "/news/tags/{ticker}.html",
			ItemSelector:  "li.clearfix",
			TitleSelector: "h2 a, h3 a",
			RateLimit:     2 * time.Second,
		},
		{
			Name:          "EconomicTimes",
			BaseURL:       "https://economictimes.indiatimes.com",
			SearchPath:    "/topic/{ticker}",
			ItemSelector:  "div.story-box",
			TitleSelector: "a",
			RateLimit:     2 * time.Second,
		},
	}
}

// Headlines scrapes up to max headlines for the ticker across all sources.
// A failing source is logged and skipped; the caller decides what an empty
// result means.
func (s *Scraper) Headlines(ctx context.Context, ticker string, max int) ([]Headline, error) {
	perSource := max / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []Headline
	for _, src := range s.sources {
		hs, err := s.scrapeSource(ctx, src, ticker, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", src.Name, "ticker", ticker)
			continue
		}
		all = append(all, hs...)
		time.Sleep(src.RateLimit)
	}
	logger.Debug(ctx, "Headline scraping completed", "ticker", ticker, "headlines", len(all))
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, ticker string, max int) ([]Headline, error) {
	var headlines []Headline

	c := colly.NewCollector(
		colly.AllowedDomains(domainOf(src.BaseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnHTML(src.ItemSelector, func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}
		if h, ok := extractHeadline(e.DOM, src); ok {
			headlines = append(headlines, h)
		}
	})

	searchURL := src.BaseURL + strings.ReplaceAll(src.SearchPath, "{ticker}", strings.ToLower(ticker))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", searchURL, err)
	}
	c.Wait()
	return headlines, nil
}

// extractHeadline pulls title and link out of one item node.
func extractHeadline(sel *goquery.Selection, src Source) (Headline, bool) {
	link := sel.Find(src.TitleSelector).First()
	title := strings.TrimSpace(link.Text())
	if title == "" {
		return Headline{}, false
	}
	href, _ := link.Attr("href")
	if href != "" && !strings.HasPrefix(href, "http") {
		href = src.BaseURL + href
	}
	return Headline{Title: title, URL: href, Source: src.Name}, true
}

func domainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
