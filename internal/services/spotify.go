// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// pageLimit is the page size for playlist scans, the provider maximum.
	pageLimit = 100

	requestTimeout = 20 * time.Second
)

// playlist scans issue bursts of page fetches; stay under the provider's
// rolling rate window
const (
	requestInterval = 100 * time.Millisecond
	requestBurst    = 10
)

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	Name string `json:"name"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyPlaylistTrack represents a track within a playlist context. Track is
// a pointer because the API reports removed or unavailable entries as null.
type SpotifyPlaylistTrack struct {
	Track *SpotifyTrack `json:"track"`
}

// SpotifyPlaylistPage represents one page of a playlist's items.
type SpotifyPlaylistPage struct {
	Items []SpotifyPlaylistTrack `json:"items"`
	Next  *string                `json:"next"`
}

type playlistTracks struct {
	Total int `json:"total"`
}

// SpotifyPlaylistInfo represents the playlist metadata subset the bot reports.
type SpotifyPlaylistInfo struct {
	Name   string         `json:"name"`
	Tracks playlistTracks `json:"tracks"`
}

type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyCatalogOpts configures a [SpotifyCatalog]. BaseURL, TokenURL and
// HTTPClient exist for tests and default to the live endpoints.
type SpotifyCatalogOpts struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	PlaylistID   string
	Market       string
	BaseURL      string
	TokenURL     string
	HTTPClient   *http.Client
}

// SpotifyCatalog implements [Catalog] for the Spotify Web API. Authentication
// uses a long-lived refresh token; [oauth2.TokenSource] caches the derived
// access token and refreshes it on expiry, safe for concurrent use.
type SpotifyCatalog struct {
	baseURL    string
	playlistID string
	market     string
	source     oauth2.TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyCatalog creates a catalog client for one managed playlist.
func NewSpotifyCatalog(opts SpotifyCatalogOpts) (*SpotifyCatalog, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client credentials", shared.ErrMissingConfig)
	}
	if opts.RefreshToken == "" {
		return nil, fmt.Errorf("%w: spotify refresh token", shared.ErrMissingConfig)
	}
	if opts.PlaylistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingConfig)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	if opts.Market == "" {
		opts.Market = "MX"
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: opts.TokenURL},
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)
	source := config.TokenSource(ctx, &oauth2.Token{RefreshToken: opts.RefreshToken})

	return &SpotifyCatalog{
		baseURL:    opts.BaseURL,
		playlistID: opts.PlaylistID,
		market:     opts.Market,
		source:     source,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Every(requestInterval), requestBurst),
	}, nil
}

func (s *SpotifyCatalog) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated HTTP request against the API. endpoint
// may be a path relative to the base URL or an absolute URL, which is how
// pagination cursors come back from the provider.
func (s *SpotifyCatalog) doRequest(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := s.source.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		apiURL = s.baseURL + endpoint
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchTracks searches the catalog for tracks matching query.
func (s *SpotifyCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("market", s.market)

	var response searchResponse
	if err := s.doRequest(ctx, "GET", "/search?"+params.Encode(), nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		tracks = append(tracks, convertTrack(item))
	}
	return tracks, nil
}

// GetTrack retrieves a single track by ID.
func (s *SpotifyCatalog) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	endpoint := fmt.Sprintf("/tracks/%s?market=%s", url.PathEscape(id), url.QueryEscape(s.market))

	var response SpotifyTrack
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
		}
		return nil, err
	}

	track := convertTrack(response)
	return &track, nil
}

// PlaylistPage retrieves one page of the managed playlist's tracks. Pass the
// previous page's Next as cursor to continue; an empty cursor starts over.
func (s *SpotifyCatalog) PlaylistPage(ctx context.Context, cursor string) (*models.CollectionPage, error) {
	endpoint := cursor
	if endpoint == "" {
		params := url.Values{}
		params.Set("fields", "items(track(id,name,artists(name),external_urls)),next")
		params.Set("limit", fmt.Sprintf("%d", pageLimit))
		params.Set("market", s.market)
		endpoint = fmt.Sprintf("/playlists/%s/tracks?%s", url.PathEscape(s.playlistID), params.Encode())
	}

	var response SpotifyPlaylistPage
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	page := &models.CollectionPage{}
	for _, item := range response.Items {
		if item.Track == nil {
			// removed or region-blocked entries come back null
			continue
		}
		page.Items = append(page.Items, convertTrack(*item.Track))
	}
	if response.Next != nil {
		page.Next = *response.Next
	}
	return page, nil
}

// AddTracks appends tracks to the managed playlist.
func (s *SpotifyCatalog) AddTracks(ctx context.Context, uris ...string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track URIs", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(s.playlistID))
	body := map[string][]string{"uris": uris}
	return s.doRequest(ctx, "POST", endpoint, body, nil)
}

// RemoveTracks removes all occurrences of the given URIs from the managed
// playlist.
func (s *SpotifyCatalog) RemoveTracks(ctx context.Context, uris ...string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track URIs", shared.ErrInvalidInput)
	}

	entries := make([]map[string]string, 0, len(uris))
	for _, uri := range uris {
		entries = append(entries, map[string]string{"uri": uri})
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(s.playlistID))
	body := map[string]interface{}{"tracks": entries}
	return s.doRequest(ctx, "DELETE", endpoint, body, nil)
}

// PlaylistInfo retrieves the managed playlist's name and size.
func (s *SpotifyCatalog) PlaylistInfo(ctx context.Context) (*models.PlaylistInfo, error) {
	endpoint := fmt.Sprintf("/playlists/%s?fields=name,tracks.total", url.PathEscape(s.playlistID))

	var response SpotifyPlaylistInfo
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, s.playlistID)
		}
		return nil, err
	}

	return &models.PlaylistInfo{Name: response.Name, Total: response.Tracks.Total}, nil
}

func convertTrack(t SpotifyTrack) models.Track {
	track := models.Track{
		ID:    t.ID,
		Title: t.Name,
		URL:   t.ExternalURLs.Spotify,
	}
	for _, a := range t.Artists {
		track.Artists = append(track.Artists, a.Name)
	}
	return track
}
