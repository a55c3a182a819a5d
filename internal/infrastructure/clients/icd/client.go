package icd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SanyamBinayake/SIH-Demo/internal/domain/entities"
	"github.com/SanyamBinayake/SIH-Demo/pkg/config"
	apperrors "github.com/SanyamBinayake/SIH-Demo/pkg/errors"
)

// tokenExpiryMargin is subtracted from the reported token lifetime so a
// token is refreshed before the WHO gateway actually rejects it.
const tokenExpiryMargin = 60 * time.Second

// Client talks to the WHO ICD-11 API. It owns the OAuth2 client-credentials
// token and refreshes it transparently; callers only see Search.
type Client struct {
	cfg        config.ICDConfig
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates an ICD API client. Missing credentials are a fatal
// configuration error surfaced immediately, not at first search.
func NewClient(cfg *config.ICDConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, apperrors.NewUnauthorizedError("WHO_CLIENT_ID or WHO_CLIENT_SECRET is not set")
	}
	return &Client{
		cfg: *cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// icdTitle tolerates both the bare-string and {"@value": ...} shapes the
// WHO API uses for entity titles.
type icdTitle struct {
	Value string
}

func (t *icdTitle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"@value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Value = obj.Value
	return nil
}

type matchingPV struct {
	PropertyID string `json:"propertyId"`
	Label      string `json:"label"`
}

type destinationEntity struct {
	TheCode     string       `json:"theCode"`
	Title       icdTitle     `json:"title"`
	MatchingPVs []matchingPV `json:"matchingPVs"`
}

type searchResponse struct {
	DestinationEntities []destinationEntity `json:"destinationEntities"`
}

// Search queries the ICD-11 MMS linearization. chapterFilter restricts the
// search to one chapter ("" means unfiltered). A non-matching query yields
// an empty slice; transport and auth failures yield an error.
func (c *Client) Search(ctx context.Context, query, chapterFilter string, limit int) ([]entities.ExternalConcept, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/mms/search", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Release)
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, apperrors.NewInternalError("invalid ICD API URL", err)
	}
	params := parsed.Query()
	params.Set("q", query)
	params.Set("flatResults", "true")
	if chapterFilter != "" {
		params.Set("chapterFilter", chapterFilter)
	}
	parsed.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("API-Version", "v2")
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("ICD search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Token may have been revoked early; drop it so the next call refreshes.
		c.mu.Lock()
		c.accessToken = ""
		c.mu.Unlock()
		return nil, apperrors.NewUnauthorizedError("ICD search rejected the access token")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalError(fmt.Sprintf("ICD search returned status %d", resp.StatusCode), nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode ICD search response", err)
	}

	results := make([]entities.ExternalConcept, 0, len(payload.DestinationEntities))
	for _, entity := range payload.DestinationEntities {
		if limit > 0 && len(results) >= limit {
			break
		}
		term := stripHighlights(entity.Title.Value)
		definition := term
		for _, pv := range entity.MatchingPVs {
			if pv.PropertyID == "Synonym" && pv.Label != "" {
				definition = stripHighlights(pv.Label)
				break
			}
		}
		results = append(results, entities.ExternalConcept{
			Code:       entity.TheCode,
			Term:       term,
			Definition: definition,
		})
	}
	return results, nil
}

// token returns a valid access token, fetching a fresh one when the cached
// token is absent or about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "icdapi_access")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("ICD token request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewUnauthorizedError(fmt.Sprintf("ICD token endpoint returned status %d", resp.StatusCode))
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperrors.NewExternalError("failed to decode ICD token response", err)
	}
	if payload.AccessToken == "" {
		return "", apperrors.NewUnauthorizedError("ICD token endpoint returned no access token")
	}

	c.accessToken = payload.AccessToken
	lifetime := time.Duration(payload.ExpiresIn) * time.Second
	if lifetime > tokenExpiryMargin {
		lifetime -= tokenExpiryMargin
	}
	c.expiresAt = time.Now().Add(lifetime)
	return c.accessToken, nil
}

var highlightReplacer = strings.NewReplacer("<em class='found'>", "", "</em>", "")

func stripHighlights(s string) string {
	return highlightReplacer.Replace(s)
}
