package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/loadday/internal/logger"
	"github.com/pfrederiksen/loadday/internal/puzzle"
)

const (
	UserAgent = "loadday/1.0 (github.com/pfrederiksen/loadday)"
	Timeout   = 30 * time.Second

	// SessionCookie is the cookie carrying the session token
	SessionCookie = "session"

	// DescriptionSelector matches one part of a day's puzzle description
	DescriptionSelector = "article.day-desc"
)

// ErrMissingPart is returned when a description part is requested that the page did not contain
var ErrMissingPart = errors.New("description part not found")

// StatusError is returned when the website answers with a non-2xx status
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("unexpected status code %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Options configures a Scraper
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// Scraper fetches puzzle inputs and descriptions from the puzzle website
type Scraper struct {
	client  *resty.Client
	baseURL string
}

// New creates a new Scraper instance. Every request carries the token as
// the session cookie.
func New(opts Options) (*Scraper, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("session token is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = puzzle.DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetCookie(&http.Cookie{
		Name:  SessionCookie,
		Value: opts.Token,
	})

	return &Scraper{
		client:  client,
		baseURL: opts.BaseURL,
	}, nil
}

// get issues an authenticated GET and returns the response body
func (s *Scraper) get(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	res, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	logger.Debug("Fetched page", logger.Fields{
		"url":      url,
		"status":   res.StatusCode(),
		"bytes":    len(res.Body()),
		"duration": time.Since(start).String(),
	})

	if !res.IsSuccess() {
		return nil, &StatusError{
			URL:        url,
			StatusCode: res.StatusCode(),
			Body:       snippet(res.Body()),
		}
	}
	return res.Body(), nil
}

// FetchInput fetches the raw puzzle input. The body is returned verbatim.
func (s *Scraper) FetchInput(ctx context.Context, p puzzle.Puzzle) ([]byte, error) {
	start := time.Now()
	defer func() { logger.RecordTiming("fetch.input", time.Since(start)) }()

	body, err := s.get(ctx, p.InputURL(s.baseURL))
	if err != nil {
		return nil, fmt.Errorf("fetching input: %w", err)
	}
	return body, nil
}

// FetchDescriptions fetches the puzzle page and returns every description
// part pretty-printed, in document order.
func (s *Scraper) FetchDescriptions(ctx context.Context, p puzzle.Puzzle) ([]string, error) {
	start := time.Now()
	defer func() { logger.RecordTiming("fetch.description", time.Since(start)) }()

	body, err := s.get(ctx, p.DescriptionURL(s.baseURL))
	if err != nil {
		return nil, fmt.Errorf("fetching description: %w", err)
	}
	return ParseDescriptions(bytes.NewReader(body))
}

// ParseDescriptions extracts the description parts from an HTML page.
// A page without any part yields an empty slice, not an error.
func ParseDescriptions(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	parts := make([]string, 0, 2)
	doc.Find(DescriptionSelector).Each(func(i int, sel *goquery.Selection) {
		parts = append(parts, Prettify(sel.Get(0)))
	})
	return parts, nil
}

// Part returns the n-th (1-based) description part
func Part(parts []string, n int) (string, error) {
	if n < 1 || n > len(parts) {
		return "", fmt.Errorf("%w: part %d requested, page has %d", ErrMissingPart, n, len(parts))
	}
	return parts[n-1], nil
}

// snippet shortens a response body for error messages
func snippet(body []byte) string {
	const max = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
