package uzjobs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const defaultTimeout = 30 * time.Second

// Listing is one scraped search-result item. Fields other than Title and Url
// are best-effort: the site's markup is unstable and missing pieces default
// instead of failing the whole item.
type Listing struct {
	ID       string
	Title    string
	Company  string
	Location string
	Url      string
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
		baseURL:    "https://uzjobs.com",
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

var vacancyIDPattern = regexp.MustCompile(`/(\d+)/?$`)

// Search scrapes the vacancy search page for the given keywords.
func (c *Client) Search(ctx context.Context, keywords []string) ([]Listing, error) {

	params := url.Values{}
	params.Set("q", strings.Join(keywords, "+"))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/ru/vacancy/search?"+params.Encode(), nil)
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

	items := doc.Find(".vacancy-box")
	if items.Length() == 0 {
		items = doc.Find("div.vacancy-item")
	}

	var listings []Listing
	items.Each(func(_ int, item *goquery.Selection) {
		listing, err := c.parseItem(item)
		if err != nil {
			log.Debugf("uzjobs: skipping item: %v", err)
			return
		}
		listings = append(listings, *listing)
	})

	return listings, nil
}

func (c *Client) parseItem(item *goquery.Selection) (*Listing, error) {

	titleTag := item.Find("a.vacancy-title").First()
	if titleTag.Length() == 0 {
		titleTag = item.Find("h3 a").First()
	}
	if titleTag.Length() == 0 {
		return nil, fmt.Errorf("no title element")
	}

	title := strings.TrimSpace(titleTag.Text())
	if title == "" {
		return nil, fmt.Errorf("empty title")
	}

	href, _ := titleTag.Attr("href")
	if href != "" && !strings.HasPrefix(href, "http") {
		href = c.baseURL + href
	}

	id := ""
	if match := vacancyIDPattern.FindStringSubmatch(href); match != nil {
		id = match[1]
	}
	if id == "" {
		return nil, fmt.Errorf("no vacancy id in url %q", href)
	}

	listing := Listing{
		ID:       id,
		Title:    title,
		Company:  firstText(item, "div.company", "p.employer"),
		Location: firstText(item, "div.location", "span.city"),
		Url:      href,
	}
	return &listing, nil
}

func firstText(item *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if tag := item.Find(selector).First(); tag.Length() > 0 {
			return strings.TrimSpace(tag.Text())
		}
	}
	return ""
}
