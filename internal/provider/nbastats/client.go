package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fortuna/vsteams/internal/aggregator"
	"github.com/fortuna/vsteams/internal/provider"
)

const (
	BaseURL        = "https://stats.nba.com/stats"
	DefaultTimeout = 30 * time.Second
	LeagueNBA      = "00"

	SeasonTypeRegular  = "Regular Season"
	SeasonTypePlayoffs = "Playoffs"
)

// Client talks to the stats.nba.com JSON endpoints.
// The site rejects requests that don't look like they come from a browser, so
// every request carries Referer/Origin/User-Agent headers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	seasonType string
	// season passed to commonallplayers; any season works with IsOnlyCurrentSeason=0
	playersSeason string
	logRequests   bool
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSeasonType selects "Regular Season" (default) or "Playoffs"
func WithSeasonType(seasonType string) Option {
	return func(c *Client) { c.seasonType = seasonType }
}

// WithPlayersSeason sets the season used when listing all players
func WithPlayersSeason(season string) Option {
	return func(c *Client) { c.playersSeason = season }
}

// WithRequestLogging toggles the per-request log line (on by default)
func WithRequestLogging(enabled bool) Option {
	return func(c *Client) { c.logRequests = enabled }
}

// New creates a client against baseURL (BaseURL when empty)
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: timeout},
		seasonType:    SeasonTypeRegular,
		playersSeason: "2024-25",
		logRequests:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Printf("[nbastats-client] using %s (season type %q)", c.baseURL, c.seasonType)
	return c
}

// GameLog fetches a player's game log via the playergamelog endpoint
func (c *Client) GameLog(ctx context.Context, playerID int, season provider.Season) ([]aggregator.GameRecord, error) {
	if season == "" {
		season = provider.SeasonAll
	}

	params := url.Values{}
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("Season", string(season))
	params.Set("SeasonType", c.seasonType)
	params.Set("LeagueID", LeagueNBA)

	var resp statsResponse
	if err := c.fetch(ctx, "playergamelog", params, &resp); err != nil {
		if fe, ok := err.(*provider.FetchError); ok {
			fe.PlayerID = playerID
		}
		return nil, err
	}

	set, err := resp.resultSet("PlayerGameLog")
	if err != nil {
		return nil, &provider.FetchError{Kind: provider.KindDecode, PlayerID: playerID, Err: err}
	}

	records, err := parseGameLog(set)
	if err != nil {
		return nil, &provider.FetchError{Kind: provider.KindDecode, PlayerID: playerID, Err: err}
	}

	return records, nil
}

// Players fetches every player the league knows about via commonallplayers
func (c *Client) Players(ctx context.Context) ([]provider.Player, error) {
	params := url.Values{}
	params.Set("LeagueID", LeagueNBA)
	params.Set("Season", c.playersSeason)
	params.Set("IsOnlyCurrentSeason", "0")

	var resp statsResponse
	if err := c.fetch(ctx, "commonallplayers", params, &resp); err != nil {
		return nil, err
	}

	set, err := resp.resultSet("CommonAllPlayers")
	if err != nil {
		return nil, &provider.FetchError{Kind: provider.KindDecode, Err: err}
	}

	players, err := parsePlayers(set)
	if err != nil {
		return nil, &provider.FetchError{Kind: provider.KindDecode, Err: err}
	}

	return players, nil
}

// fetch makes a GET request to endpoint and decodes the JSON body into out
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &provider.FetchError{Kind: provider.KindUnavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[nbastats-client] ❌ %s failed: %v", endpoint, err)
		return &provider.FetchError{Kind: provider.KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &provider.FetchError{Kind: provider.KindUnavailable, Err: fmt.Errorf("reading body: %w", err)}
	}

	if c.logRequests {
		log.Printf("[nbastats-client] %s -> %d (%d bytes, %v)", endpoint, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return &provider.FetchError{Kind: provider.KindNotFound, Err: fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, snippet(body))}
	case resp.StatusCode != http.StatusOK:
		return &provider.FetchError{Kind: provider.KindUnavailable, Err: fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, snippet(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &provider.FetchError{Kind: provider.KindDecode, Err: fmt.Errorf("decoding %s: %w (body: %s)", endpoint, err, snippet(body))}
	}

	return nil
}

func snippet(body []byte) string {
	return string(body[:min(len(body), 200)])
}
