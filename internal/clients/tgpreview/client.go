// Package tgpreview reads recent channel posts through Telegram's public
// t.me/s preview pages. It needs no account session, which keeps channel
// ingestion a plain HTTP round trip per channel.
package tgpreview

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const defaultTimeout = 30 * time.Second

type Message struct {
	ID      int
	Channel string
	Text    string
	Date    time.Time
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    string
	httpClient HTTPClient
	timeout    time.Duration
}

func NewClient() *Client {
	return &Client{
		baseURL:    "https://t.me",
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// RecentMessages returns up to limit of the newest text posts of a public
// channel, oldest first. The channel may be given with or without a leading @.
func (c *Client) RecentMessages(ctx context.Context, channel string, limit int) ([]Message, error) {

	name := strings.TrimPrefix(channel, "@")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/s/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %v", err)
	}

	var messages []Message
	doc.Find("div.tgme_widget_message").Each(func(_ int, widget *goquery.Selection) {
		message, err := parseWidget(name, widget)
		if err != nil {
			log.Debugf("tgpreview: skipping post in %s: %v", channel, err)
			return
		}
		messages = append(messages, *message)
	})

	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

func parseWidget(channel string, widget *goquery.Selection) (*Message, error) {

	post, ok := widget.Attr("data-post")
	if !ok {
		return nil, fmt.Errorf("no data-post attribute")
	}

	parts := strings.Split(post, "/")
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return nil, fmt.Errorf("bad post id %q", post)
	}

	text := strings.TrimSpace(widget.Find("div.tgme_widget_message_text").First().Text())
	if text == "" {
		return nil, fmt.Errorf("post %d has no text", id)
	}

	date := time.Now().UTC()
	if raw, ok := widget.Find("time").First().Attr("datetime"); ok {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			date = parsed.UTC()
		}
	}

	return &Message{ID: id, Channel: channel, Text: text, Date: date}, nil
}
