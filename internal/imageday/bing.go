package imageday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBingURL = "https://www.bing.com"

// BingClient fetches Bing's image of the day from the HPImageArchive
// endpoint. It implements Provider.
type BingClient struct {
	baseURL string
	market  string
	http    *http.Client
}

func NewBingClient(baseURL, market string) *BingClient {
	return &BingClient{
		baseURL: baseURL,
		market:  market,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type archiveResponse struct {
	Images []struct {
		StartDate string `json:"startdate"`
		URL       string `json:"url"`
		Title     string `json:"title"`
		Copyright string `json:"copyright"`
	} `json:"images"`
}

func (c *BingClient) Today(ctx context.Context) (Info, error) {
	u := fmt.Sprintf("%s/HPImageArchive.aspx?format=js&idx=0&n=1&mkt=%s", c.baseURL, c.market)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Info{}, fmt.Errorf("building image request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("fetching image of the day: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("fetching image of the day: unexpected status %d", resp.StatusCode)
	}

	var archive archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return Info{}, fmt.Errorf("decoding image metadata: %w", err)
	}
	if len(archive.Images) == 0 {
		return Info{}, fmt.Errorf("image archive returned no images")
	}

	img := archive.Images[0]
	day, err := time.Parse("20060102", img.StartDate)
	if err != nil {
		return Info{}, fmt.Errorf("parsing image start date %q: %w", img.StartDate, err)
	}

	return Info{
		Date:      day.Format("2006-01-02"),
		URL:       c.baseURL + img.URL,
		Title:     img.Title,
		Copyright: img.Copyright,
		Country:   countryFromCopyright(img.Copyright),
	}, nil
}

// countryFromCopyright pulls the place name out of Bing's copyright line,
// which looks like "Title, Region, Country (© Photographer)". With two
// comma parts the country is the last one; with more it is the
// second-to-last (the last being the photographer credit).
func countryFromCopyright(copyright string) string {
	parts := strings.Split(copyright, ",")

	var country string
	switch {
	case len(parts) == 2:
		country = parts[len(parts)-1]
	case len(parts) > 2:
		country = parts[len(parts)-2]
	}

	if i := strings.Index(country, "("); i != -1 {
		country = country[:i]
	}
	return strings.TrimSpace(country)
}
