// Package wikipedia looks up the header image shown above the form.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://en.wikipedia.org"

// ThumbnailPage is the article whose image decorates themed playlists.
const ThumbnailPage = "Taylor_Swift"

type summary struct {
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(timeout time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Thumbnail returns an image URL for the given article, or "" when none
// can be found. Lookups never fail the caller.
func (c *Client) Thumbnail(ctx context.Context, page string) string {
	span := sentry.StartSpan(ctx, "wikipedia.thumbnail")
	span.Description = "Fetch article thumbnail"
	span.SetTag("page", page)
	defer span.Finish()

	src, err := c.summaryThumbnail(ctx, page)
	if err == nil && src != "" {
		span.Status = sentry.SpanStatusOK
		return src
	}
	if err != nil {
		log.Debugf("Wikipedia summary lookup failed for %s (%v), trying og:image", page, err)
	}

	src, err = c.openGraphImage(ctx, page)
	if err != nil {
		log.Warnf("Failed to fetch Wikipedia thumbnail for %s: %v", page, err)
		span.Status = sentry.SpanStatusInternalError
		return ""
	}

	span.Status = sentry.SpanStatusOK
	return src
}

func (c *Client) summaryThumbnail(ctx context.Context, page string) (string, error) {
	u := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(page))
	resp, err := c.get(ctx, u, "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var s summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return "", err
	}
	return s.Thumbnail.Source, nil
}

func (c *Client) openGraphImage(ctx context.Context, page string) (string, error) {
	u := fmt.Sprintf("%s/wiki/%s", c.baseURL, url.PathEscape(page))
	resp, err := c.get(ctx, u, "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	image, _ := doc.Find("meta[property='og:image']").Attr("content")
	return strings.TrimSpace(image), nil
}

func (c *Client) get(ctx context.Context, u, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "vibelist/1.0 (playlist generator)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}
	return resp, nil
}
