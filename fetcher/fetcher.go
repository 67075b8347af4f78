package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tweet-relay-bot/models"
	"tweet-relay-bot/retry"
)

// The upstream service rejects requests without these headers. They are
// fixed constants of the endpoint, not configuration.
const (
	headerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	headerReferer   = "https://x.com/"
	headerOrigin    = "https://x.com"
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 3
	retryDelay     = time.Second
)

// Client fetches tweet batches and per-tweet detail records from the
// feed endpoint. All requests are retried with a fixed attempt budget.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// New creates a feed client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: requestTimeout},
		attempts: maxAttempts,
		delay:    retryDelay,
	}
}

// FetchBatch retrieves the current batch of tweets. A response that is not
// shaped as {data: [...]} yields an empty batch with a logged warning;
// a non-200 status is a hard failure for that attempt.
func (c *Client) FetchBatch() ([]models.Tweet, error) {
	return retry.Do("feed fetch", c.attempts, c.delay, func() ([]models.Tweet, error) {
		body, err := c.get(c.baseURL)
		if err != nil {
			return nil, err
		}
		var envelope struct {
			Data []models.Tweet `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			log.Printf("feed response has unexpected shape, treating as empty: %v", err)
			return nil, nil
		}
		if envelope.Data == nil {
			log.Printf("feed response carries no data array, treating as empty")
			return nil, nil
		}
		return envelope.Data, nil
	})
}

// FetchDetail retrieves the extended detail record for a single tweet,
// or nil when the response carries no data field.
func (c *Client) FetchDetail(id string) (*models.TweetDetail, error) {
	return retry.Do("detail fetch", c.attempts, c.delay, func() (*models.TweetDetail, error) {
		body, err := c.get(c.baseURL + "/" + id)
		if err != nil {
			return nil, err
		}
		var envelope struct {
			Data *models.TweetDetail `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			log.Printf("detail response for tweet %s has unexpected shape: %v", id, err)
			return nil, nil
		}
		return envelope.Data, nil
	})
}

func (c *Client) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", headerUserAgent)
	req.Header.Set("Referer", headerReferer)
	req.Header.Set("Origin", headerOrigin)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
