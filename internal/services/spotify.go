// Spotify implementation of [Catalog]
//
// Spotify API conventions based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/crossfade/internal/models"
	"github.com/desertthunder/crossfade/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// DefaultRedirectURI matches the callback route the server mounts.
const DefaultRedirectURI = "http://localhost:4000/auth/callback"

// SpotifyService implements [Catalog] for the Spotify Web API.
//
// Uses [oauth2] for the authorization-code and refresh-token exchanges
// (client id/secret go in an HTTP Basic header) and acts as a pure
// authenticated tunnel for catalog calls: no retries, no caching, bodies
// passed through as opaque JSON.
type SpotifyService struct {
	config     *oauth2.Config
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
//
// Recognized keys: client_id, client_secret, redirect_uri, and the
// endpoint overrides auth_url, token_url and api_base_url used by tests.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	authURL := credentials["auth_url"]
	if authURL == "" {
		authURL = spotifyAuthURL
	}
	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	baseURL := credentials["api_base_url"]
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-email",
			"playlist-read-private",
			"playlist-read-collaborative",
			"user-read-playback-state",
			"user-modify-playback-state",
			"streaming",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &SpotifyService{
		config:     config,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// ExchangeCode performs the authorization-code exchange. A single POST to
// the token endpoint; no retry on failure.
func (s *SpotifyService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, tokenEndpointError(err)
	}
	return token, nil
}

// Refresh performs the refresh-token exchange. The provider may omit a new
// refresh token; the prior one is carried forward in the result.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	src := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, tokenEndpointError(err)
	}

	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}
	return token, nil
}

// tokenEndpointError maps oauth2 retrieval failures onto [*AuthError],
// preserving the provider's status and body.
func tokenEndpointError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		return &AuthError{Status: status, Body: string(re.Body)}
	}
	return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
}

// SessionFromToken derives a client session from exchanged token material.
// prevRefresh is carried forward when the token holds no refresh token.
func SessionFromToken(token *oauth2.Token, prevRefresh string) models.Session {
	return models.NewSession(token.AccessToken, token.RefreshToken, token.Expiry, prevRefresh)
}

// doRequest performs an authenticated HTTP request against the catalog API
// and returns the raw status and body. Only transport-level failures
// produce an error; callers apply their own success rules.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, accessToken string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, data, nil
}

// Get issues an authenticated GET and returns the response body as opaque
// JSON. Non-success statuses become [*APIError] with the upstream status
// and body untouched.
func (s *SpotifyService) Get(ctx context.Context, path, accessToken string) (json.RawMessage, error) {
	status, data, err := s.doRequest(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Body: string(data)}
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: GET %s", shared.ErrMalformedUpstream, path)
	}

	return json.RawMessage(data), nil
}

// Put issues an authenticated PUT with a JSON body. Playback endpoints
// signal success with 204 and an empty body; every other status is relayed
// as [*APIError].
func (s *SpotifyService) Put(ctx context.Context, path, accessToken string, body any) error {
	status, data, err := s.doRequest(ctx, http.MethodPut, path, accessToken, body)
	if err != nil {
		return err
	}

	if status != http.StatusNoContent {
		return &APIError{Status: status, Body: string(data)}
	}

	return nil
}
