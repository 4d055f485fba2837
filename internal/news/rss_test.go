package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func newTestFeedFetcher(feeds []string, hoursBack int, now time.Time) *FeedFetcher {
	f := NewFeedFetcher(feeds, hoursBack)
	f.limiter = newHostLimiter(time.Millisecond)
	f.now = func() time.Time { return now }
	return f
}

func TestParseFeedItems(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	recentTime := now.Add(-2 * time.Hour)
	oldTime := now.Add(-72 * time.Hour)

	tests := []struct {
		name        string
		items       []*gofeed.Item
		hoursBack   int
		wantCount   int
		wantSkipped int
		desc        string
	}{
		{
			name: "recent item within lookback window",
			items: []*gofeed.Item{
				{Title: "Recent Post", Link: "https://example.com/recent", Description: "A recent post", PublishedParsed: &recentTime},
			},
			hoursBack: 24,
			wantCount: 1,
			desc:      "items within the lookback window should be included",
		},
		{
			name: "old item filtered by lookback",
			items: []*gofeed.Item{
				{Title: "Old Post", Link: "https://example.com/old", Description: "An old post", PublishedParsed: &oldTime},
			},
			hoursBack: 24,
			wantCount: 0,
			desc:      "items older than lookback window should be excluded",
		},
		{
			name: "zero lookback keeps everything",
			items: []*gofeed.Item{
				{Title: "Old Post", Link: "https://example.com/old", PublishedParsed: &oldTime},
			},
			hoursBack: 0,
			wantCount: 1,
			desc:      "a disabled lookback should not filter",
		},
		{
			name: "nil published date is included",
			items: []*gofeed.Item{
				{Title: "No Date Post", Link: "https://example.com/nodate", Description: "No date"},
			},
			hoursBack: 24,
			wantCount: 1,
			desc:      "items with nil PublishedParsed should always be included",
		},
		{
			name: "empty title is skipped",
			items: []*gofeed.Item{
				{Title: "", Link: "https://example.com/notitle", PublishedParsed: &recentTime},
			},
			hoursBack:   24,
			wantCount:   0,
			wantSkipped: 1,
			desc:        "items with empty title should be skipped",
		},
		{
			name: "empty URL is skipped",
			items: []*gofeed.Item{
				{Title: "No URL Post", Link: "", PublishedParsed: &recentTime},
			},
			hoursBack:   24,
			wantCount:   0,
			wantSkipped: 1,
			desc:        "items with empty URL should be skipped",
		},
		{
			name: "mixed items with some valid some invalid",
			items: []*gofeed.Item{
				{Title: "Good Post", Link: "https://example.com/good", PublishedParsed: &recentTime},
				{Title: "", Link: "https://example.com/notitle", PublishedParsed: &recentTime},
				{Title: "Old Post", Link: "https://example.com/old", PublishedParsed: &oldTime},
				{Title: "No Date", Link: "https://example.com/nodate"},
			},
			hoursBack:   24,
			wantCount:   2, // Good Post + No Date
			wantSkipped: 1,
			desc:        "mix of valid and invalid items should filter correctly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFeedFetcher(nil, tt.hoursBack, now)
			feed := &gofeed.Feed{Title: "Test Feed", Items: tt.items}
			res := f.parseFeedItems("https://example.com/feed.xml", feed)

			if got := len(res.Records); got != tt.wantCount {
				t.Errorf("%s: got %d records, want %d", tt.desc, got, tt.wantCount)
			}
			if res.Skipped != tt.wantSkipped {
				t.Errorf("%s: got %d skipped, want %d", tt.desc, res.Skipped, tt.wantSkipped)
			}
		})
	}
}

func TestParseFeedItems_FieldMapping(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	pubTime := time.Date(2026, 10, 18, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

	feed := &gofeed.Feed{
		Title: "AI Weekly",
		Link:  "https://aiweekly.example.com",
		Items: []*gofeed.Item{
			{
				Title:           "Test &amp; Article",
				Link:            "https://example.com/article",
				Description:     "A <b>bold</b> description",
				Content:         "<p>Full <em>body</em></p>",
				PublishedParsed: &pubTime,
			},
		},
	}

	f := newTestFeedFetcher(nil, 0, now)
	res := f.parseFeedItems("https://aiweekly.example.com/rss", feed)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	rec := res.Records[0]

	if rec.Title != "Test & Article" {
		t.Errorf("Title = %q, want %q", rec.Title, "Test & Article")
	}
	if rec.URL != "https://example.com/article" {
		t.Errorf("URL = %q, want %q", rec.URL, "https://example.com/article")
	}
	if rec.Description != "A bold description" {
		t.Errorf("Description = %q, want %q", rec.Description, "A bold description")
	}
	if rec.Content != "Full body" {
		t.Errorf("Content = %q, want %q", rec.Content, "Full body")
	}
	if rec.Source.Name != "AI Weekly" {
		t.Errorf("Source.Name = %q, want %q", rec.Source.Name, "AI Weekly")
	}
	if rec.Source.URL != "https://aiweekly.example.com" {
		t.Errorf("Source.URL = %q", rec.Source.URL)
	}
	if rec.PublishedAt != "2026-10-18T14:30:00Z" {
		t.Errorf("PublishedAt = %q, want UTC RFC3339", rec.PublishedAt)
	}
}

func TestParseFeedItems_SourceFallback(t *testing.T) {
	f := newTestFeedFetcher(nil, 0, time.Now())
	feed := &gofeed.Feed{Items: []*gofeed.Item{{Title: "Post", Link: "https://example.com/p"}}}

	res := f.parseFeedItems("https://blog.example.org/feed", feed)
	if got := res.Records[0].Source.Name; got != "blog.example.org" {
		t.Errorf("Source.Name = %q, want feed host", got)
	}
	if got := res.Records[0].Source.URL; got != "https://blog.example.org/feed" {
		t.Errorf("Source.URL = %q, want feed URL", got)
	}
}

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>%s</title>
  <link>https://example.com</link>
  <item>
    <title>%s first story</title>
    <link>https://example.com/%s/1</link>
    <description>&lt;p&gt;First description&lt;/p&gt;</description>
  </item>
  <item>
    <title>%s second story</title>
    <link>https://example.com/%s/2</link>
    <description>Second description</description>
  </item>
</channel>
</rss>`

func TestFeedFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "broken" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, testRSS, name, name, name, name, name)
	}))
	defer srv.Close()

	feeds := []string{srv.URL + "/alpha", srv.URL + "/broken", srv.URL + "/beta"}
	f := newTestFeedFetcher(feeds, 0, time.Now())

	res, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(res.Records))
	}
	wantTitles := []string{"alpha first story", "alpha second story", "beta first story", "beta second story"}
	for i, want := range wantTitles {
		if res.Records[i].Title != want {
			t.Errorf("record %d title = %q, want %q", i, res.Records[i].Title, want)
		}
	}
	if res.Records[0].Description != "First description" {
		t.Errorf("description should be sanitized, got %q", res.Records[0].Description)
	}
	if res.Records[0].Source.Name != "alpha" {
		t.Errorf("Source.Name = %q, want %q", res.Records[0].Source.Name, "alpha")
	}

	if len(res.Failed) != 1 {
		t.Fatalf("expected 1 failed feed, got %d", len(res.Failed))
	}
	if res.Failed[0].Source != srv.URL+"/broken" {
		t.Errorf("failed source = %q", res.Failed[0].Source)
	}
}

func TestFeedFetcher_Name(t *testing.T) {
	if got := NewFeedFetcher(nil, 0).Name(); got != "rss" {
		t.Errorf("Name() = %q, want %q", got, "rss")
	}
}
